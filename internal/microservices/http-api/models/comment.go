package models

import "time"

type Comment struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID      int64     `json:"post_id" gorm:"not null;index"`
	ParentID    *int64    `json:"parent_id" gorm:"index"`
	AuthorName  string    `json:"author_name" gorm:"size:128;not null"`
	AuthorEmail *string   `json:"author_email" gorm:"size:256"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UserID      *int64    `json:"user_id" gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}

// OwnedBy reports whether the comment was written by the given user.
// Anonymous comments have no owner.
func (c *Comment) OwnedBy(userID int64) bool {
	return c.UserID != nil && *c.UserID == userID
}
