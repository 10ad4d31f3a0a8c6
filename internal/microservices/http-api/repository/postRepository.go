package repository

import (
	"context"
	"fmt"
	"strings"

	"bloghub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	List(ctx context.Context, filter models.PostFilter, page, pageSize int) ([]models.Post, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	IncrementCounters(ctx context.Context, id int64, views, likes int64) error
	ListForArchive(ctx context.Context) ([]models.Post, error)
	FindTagsByIDs(ctx context.Context, ids []int64) ([]models.Tag, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE pattern that matches it literally.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// applyPostFilter adds the WHERE clauses of f to q.
func applyPostFilter(q *gorm.DB, f models.PostFilter) *gorm.DB {
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		q = q.Where(`(posts.title ILIKE ? ESCAPE '\' OR posts.summary ILIKE ? ESCAPE '\' OR posts.content ILIKE ? ESCAPE '\')`, pattern, pattern, pattern)
	}
	if f.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.name = ?", f.Category)
	}
	if f.Tag != "" {
		q = q.Where("EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = posts.id AND t.name = ?)", f.Tag)
	}
	if f.Date != nil {
		q = q.Where("posts.date = ?", f.Date.Format("2006-01-02"))
	}
	return q
}

// List returns one page of posts, newest first, and the total matching the filter.
func (r *postRepository) List(ctx context.Context, filter models.PostFilter, page, pageSize int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	countQuery := applyPostFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	offset := (page - 1) * pageSize
	err := applyPostFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Preload("Category").
		Preload("Author").
		Preload("Tags").
		Order("posts.date DESC, posts.id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		Preload("Tags").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return count > 0, nil
}

// Create inserts the post together with its tag links.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Category", "Author").Create(post).Error
}

// Update saves the post columns and replaces its tag set.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).
			Select("title", "summary", "content", "category_id", "date").
			Updates(post).Error; err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		if err := tx.Model(post).Association("Tags").Replace(post.Tags); err != nil {
			return fmt.Errorf("replace post tags: %w", err)
		}
		return nil
	})
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Select("Tags").Delete(&models.Post{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementCounters adds to views and likes in a single UPDATE statement.
func (r *postRepository) IncrementCounters(ctx context.Context, id int64, views, likes int64) error {
	result := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"views": gorm.Expr("views + ?", views),
			"likes": gorm.Expr("likes + ?", likes),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForArchive returns id, title and date of every post, newest first.
func (r *postRepository) ListForArchive(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Select("id", "title", "date").
		Order("date DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return posts, nil
}

func (r *postRepository) FindTagsByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return tags, nil
}
