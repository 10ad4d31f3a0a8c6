package models

import "time"

type Post struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string    `json:"title" gorm:"size:256;not null"`
	Summary    *string   `json:"summary,omitempty" gorm:"size:512"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CategoryID *int64    `json:"category_id,omitempty" gorm:"index"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	AuthorID   *int64    `json:"author_id,omitempty" gorm:"index"`
	Views      int64     `json:"views" gorm:"not null;default:0"`
	Likes      int64     `json:"likes" gorm:"not null;default:0"`

	// associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;"`
}

func (Post) TableName() string {
	return "posts"
}

// OwnedBy reports whether the post was written by the given user.
func (p *Post) OwnedBy(userID int64) bool {
	return p.AuthorID != nil && *p.AuthorID == userID
}

// PostFilter narrows a post listing. Zero values mean "no filter".
type PostFilter struct {
	Search   string
	Category string
	Tag      string
	Date     *time.Time
}
