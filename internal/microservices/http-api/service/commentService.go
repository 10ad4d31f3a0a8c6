package service

import (
	"context"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/microservices/http-api/repository"
)

const (
	MsgPostNotFound    = "post not found"
	MsgCommentNotFound = "comment not found"
	MsgNotAuthorized   = "not authorized"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID *int64, req *dto.CreateCommentDTO) (*dto.CommentNode, error)
	UpdateComment(ctx context.Context, commentID, userID int64, content string) (*dto.CommentNode, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
	GetPostComments(ctx context.Context, postID int64) (*dto.CommentTreeResponse, error)
	GetUserComments(ctx context.Context, userID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) requirePost(ctx context.Context, postID int64) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return apperror.NewInternal("failed to load post", err)
	}
	if !exists {
		return apperror.NewNotFound(MsgPostNotFound, nil)
	}
	return nil
}

// CreateComment adds a root comment or a reply. userID is nil for anonymous
// callers. A reply's parent must already exist on the same post, so a new
// comment can never close a cycle.
func (s *commentService) CreateComment(ctx context.Context, userID *int64, req *dto.CreateCommentDTO) (*dto.CommentNode, error) {
	if err := s.requirePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, apperror.NewNotFound("parent comment not found", nil)
			}
			return nil, apperror.NewInternal("failed to load parent comment", err)
		}
		if parent.PostID != req.PostID {
			return nil, apperror.NewValidation("invalid request", map[string]string{
				"parent_id": "must reference a comment on the same post",
			})
		}
	}

	comment := &models.Comment{
		PostID:      req.PostID,
		ParentID:    req.ParentID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
		UserID:      userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperror.NewInternal("failed to create comment", err)
	}

	return dto.FromModelToCommentNode(comment), nil
}

// loadOwned fetches a comment and checks that userID wrote it.
func (s *commentService) loadOwned(ctx context.Context, commentID, userID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound(MsgCommentNotFound, nil)
		}
		return nil, apperror.NewInternal("failed to load comment", err)
	}

	// Check ownership
	if !comment.OwnedBy(userID) {
		return nil, apperror.NewForbidden(MsgNotAuthorized)
	}
	return comment, nil
}

// UpdateComment updates an existing comment
func (s *commentService) UpdateComment(ctx context.Context, commentID, userID int64, content string) (*dto.CommentNode, error) {
	comment, err := s.loadOwned(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound(MsgCommentNotFound, nil)
		}
		return nil, apperror.NewInternal("failed to update comment", err)
	}

	comment.Content = content
	return dto.FromModelToCommentNode(comment), nil
}

// DeleteComment removes a comment; its replies move up to root level.
func (s *commentService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	if _, err := s.loadOwned(ctx, commentID, userID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if repository.IsNotFound(err) {
			return apperror.NewNotFound(MsgCommentNotFound, nil)
		}
		return apperror.NewInternal("failed to delete comment", err)
	}
	return nil
}

// GetPostComments returns the threaded comments of a post.
func (s *commentService) GetPostComments(ctx context.Context, postID int64) (*dto.CommentTreeResponse, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list comments", err)
	}

	return &dto.CommentTreeResponse{Comments: BuildCommentTree(comments)}, nil
}

// GetUserComments retrieves all comments by a user with pagination
func (s *commentService) GetUserComments(ctx context.Context, userID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, apperror.NewInternal("failed to list comments", err)
	}

	nodes := make([]*dto.CommentNode, 0, len(comments))
	for i := range comments {
		nodes = append(nodes, dto.FromModelToCommentNode(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(nodes, int(total), page, pageSize), nil
}
