package repository

import (
	"context"
	"fmt"

	"bloghub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	UpdateContent(ctx context.Context, commentID int64, content string) error
	Delete(ctx context.Context, commentID int64) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// UpdateContent rewrites the body of a comment. Thread position never changes.
func (r *commentRepository) UpdateContent(ctx context.Context, commentID int64, content string) error {
	result := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a comment. Its direct replies are detached and become roots.
func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comment{}).
			Where("parent_id = ?", commentID).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach replies: %w", err)
		}

		result := tx.Delete(&models.Comment{}, commentID)
		if result.Error != nil {
			return fmt.Errorf("delete comment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost loads every comment of a post in one query; the thread shape is
// assembled in memory.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	return comments, nil
}

// ListByUser retrieves all comments by a specific user with pagination
func (r *commentRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
