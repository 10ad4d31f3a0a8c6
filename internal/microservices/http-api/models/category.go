package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:64;unique;not null"`
}

func (Category) TableName() string {
	return "categories"
}

type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:64;unique;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// NamedCount is a category or tag together with the number of posts using it.
type NamedCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
