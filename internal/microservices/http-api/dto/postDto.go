package dto

import (
	"time"

	"bloghub/internal/microservices/http-api/models"
)

const dateLayout = "2006-01-02"

// PostListQuery: query parameters of GET /api/posts
type PostListQuery struct {
	PaginationQuery
	Search   string `form:"search" binding:"max=256"`
	Category string `form:"category" binding:"max=64"`
	Tag      string `form:"tag" binding:"max=64"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Filter converts the query into a repository filter. Date has already been
// validated by binding.
func (q *PostListQuery) Filter() models.PostFilter {
	filter := models.PostFilter{
		Search:   q.Search,
		Category: q.Category,
		Tag:      q.Tag,
	}
	if q.Date != "" {
		if d, err := time.Parse(dateLayout, q.Date); err == nil {
			filter.Date = &d
		}
	}
	return filter
}

// PostRequest: payload for creating or updating a post
type PostRequest struct {
	Title      string  `json:"title" binding:"required,min=1,max=256"`
	Summary    *string `json:"summary" binding:"omitempty,max=512"`
	Content    string  `json:"content" binding:"required,min=1"`
	CategoryID *int64  `json:"category_id" binding:"omitempty,min=1"`
	TagIDs     []int64 `json:"tag_ids" binding:"omitempty,max=20,dive,min=1"`
	Date       string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ParsedDate returns the requested date, or today when none was given.
func (r *PostRequest) ParsedDate(now time.Time) time.Time {
	if r.Date != "" {
		if d, err := time.Parse(dateLayout, r.Date); err == nil {
			return d
		}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PostResponse: a post with its relations flattened to names
type PostResponse struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Summary  *string  `json:"summary"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Date     string   `json:"date"`
	Author   string   `json:"author"`
	Views    int64    `json:"views"`
	Likes    int64    `json:"likes"`
}

// FromModelToPostResponse converts a Post model to PostResponse DTO
func FromModelToPostResponse(post *models.Post) *PostResponse {
	resp := &PostResponse{
		ID:      post.ID,
		Title:   post.Title,
		Summary: post.Summary,
		Content: post.Content,
		Tags:    make([]string, 0, len(post.Tags)),
		Date:    post.Date.Format(dateLayout),
		Views:   post.Views,
		Likes:   post.Likes,
	}
	if post.Category != nil {
		resp.Category = post.Category.Name
	}
	if post.Author != nil {
		resp.Author = post.Author.Username
	}
	for _, t := range post.Tags {
		resp.Tags = append(resp.Tags, t.Name)
	}
	return resp
}

// PostListResponse: one page of posts
type PostListResponse struct {
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int64           `json:"total"`
	Posts []*PostResponse `json:"posts"`
}

// ArchivePost: a post entry in the archive tree
type ArchivePost struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// ArchiveYear groups archive entries by year
type ArchiveYear struct {
	Year  int           `json:"year"`
	Posts []ArchivePost `json:"posts"`
}

type ArchiveResponse struct {
	Archive []ArchiveYear `json:"archive"`
}
