package service

import (
	"context"
	"time"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/microservices/http-api/repository"
)

type PostService interface {
	ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostListResponse, error)
	GetPost(ctx context.Context, id int64) (*dto.PostResponse, error)
	CreatePost(ctx context.Context, authorID int64, req *dto.PostRequest) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, id, userID int64, req *dto.PostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, id, userID int64) error
	GetArchive(ctx context.Context) (*dto.ArchiveResponse, error)
}

type postService struct {
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
	now          func() time.Time
}

func NewPostService(postRepo repository.PostRepository, taxonomyRepo repository.TaxonomyRepository) PostService {
	return &postService{
		postRepo:     postRepo,
		taxonomyRepo: taxonomyRepo,
		now:          time.Now,
	}
}

func (s *postService) ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostListResponse, error) {
	posts, total, err := s.postRepo.List(ctx, query.Filter(), query.Page, query.Size)
	if err != nil {
		return nil, apperror.NewInternal("failed to list posts", err)
	}

	out := &dto.PostListResponse{
		Page:  query.Page,
		Size:  query.Size,
		Total: total,
		Posts: make([]*dto.PostResponse, 0, len(posts)),
	}
	for i := range posts {
		out.Posts = append(out.Posts, dto.FromModelToPostResponse(&posts[i]))
	}
	return out, nil
}

func (s *postService) load(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound(MsgPostNotFound, nil)
		}
		return nil, apperror.NewInternal("failed to load post", err)
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*dto.PostResponse, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToPostResponse(post), nil
}

// resolveRelations checks the category and loads the tags a request names.
func (s *postService) resolveRelations(ctx context.Context, req *dto.PostRequest) ([]models.Tag, error) {
	if req.CategoryID != nil {
		exists, err := s.taxonomyRepo.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			return nil, apperror.NewInternal("failed to load category", err)
		}
		if !exists {
			return nil, apperror.NewValidation("invalid request", map[string]string{
				"category_id": "unknown category",
			})
		}
	}

	ids := dedupeIDs(req.TagIDs)
	tags, err := s.postRepo.FindTagsByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to load tags", err)
	}
	if len(tags) != len(ids) {
		return nil, apperror.NewValidation("invalid request", map[string]string{
			"tag_ids": "unknown tag",
		})
	}
	return tags, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *postService) CreatePost(ctx context.Context, authorID int64, req *dto.PostRequest) (*dto.PostResponse, error) {
	tags, err := s.resolveRelations(ctx, req)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Date:       req.ParsedDate(s.now()),
		AuthorID:   &authorID,
		Tags:       tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apperror.NewInternal("failed to create post", err)
	}

	return s.GetPost(ctx, post.ID)
}

// UpdatePost replaces the editable fields of a post. Only its author may.
func (s *postService) UpdatePost(ctx context.Context, id, userID int64, req *dto.PostRequest) (*dto.PostResponse, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(userID) {
		return nil, apperror.NewForbidden(MsgNotAuthorized)
	}

	tags, err := s.resolveRelations(ctx, req)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Summary = req.Summary
	post.Content = req.Content
	post.CategoryID = req.CategoryID
	if req.Date != "" {
		post.Date = req.ParsedDate(s.now())
	}
	post.Tags = tags

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, apperror.NewInternal("failed to update post", err)
	}
	return s.GetPost(ctx, id)
}

func (s *postService) DeletePost(ctx context.Context, id, userID int64) error {
	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !post.OwnedBy(userID) {
		return apperror.NewForbidden(MsgNotAuthorized)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperror.NewNotFound(MsgPostNotFound, nil)
		}
		return apperror.NewInternal("failed to delete post", err)
	}
	return nil
}

// GetArchive groups posts by year, newest year first.
func (s *postService) GetArchive(ctx context.Context) (*dto.ArchiveResponse, error) {
	posts, err := s.postRepo.ListForArchive(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to build archive", err)
	}

	out := &dto.ArchiveResponse{Archive: make([]dto.ArchiveYear, 0)}
	for _, p := range posts {
		year := p.Date.Year()
		if n := len(out.Archive); n == 0 || out.Archive[n-1].Year != year {
			out.Archive = append(out.Archive, dto.ArchiveYear{Year: year})
		}
		last := &out.Archive[len(out.Archive)-1]
		last.Posts = append(last.Posts, dto.ArchivePost{
			ID:    p.ID,
			Title: p.Title,
			Date:  p.Date.Format("2006-01-02"),
		})
	}
	return out, nil
}
