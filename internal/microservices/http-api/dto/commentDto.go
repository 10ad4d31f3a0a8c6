package dto

import (
	"time"

	"bloghub/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	PostID      int64   `json:"post_id" binding:"required,min=1"`
	ParentID    *int64  `json:"parent_id" binding:"omitempty,min=1"`
	AuthorName  string  `json:"author_name" binding:"required,min=1,max=128"`
	AuthorEmail *string `json:"author_email" binding:"omitempty,email,max=256"`
	Content     string  `json:"content" binding:"required,min=1,max=5000"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentNode is one comment with its replies, as returned by the thread listing.
type CommentNode struct {
	ID          int64          `json:"id"`
	PostID      int64          `json:"post_id"`
	ParentID    *int64         `json:"parent_id"`
	AuthorName  string         `json:"author_name"`
	AuthorEmail *string        `json:"author_email"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"created_at"`
	UserID      *int64         `json:"user_id,omitempty"`
	Orphan      bool           `json:"orphan,omitempty"`
	Replies     []*CommentNode `json:"replies"`
}

// FromModelToCommentNode converts a Comment model to a node without replies
func FromModelToCommentNode(comment *models.Comment) *CommentNode {
	return &CommentNode{
		ID:          comment.ID,
		PostID:      comment.PostID,
		ParentID:    comment.ParentID,
		AuthorName:  comment.AuthorName,
		AuthorEmail: comment.AuthorEmail,
		Content:     comment.Content,
		CreatedAt:   comment.CreatedAt,
		UserID:      comment.UserID,
		Replies:     []*CommentNode{},
	}
}

// CommentTreeResponse wraps the forest of one post
type CommentTreeResponse struct {
	Comments []*CommentNode `json:"comments"`
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []*CommentNode `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []*CommentNode, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
