package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:128;not null" json:"username"`
	Password  string    `gorm:"column:password_hash;size:256;not null" json:"-"` // Not show in JSON
	CreatedAt time.Time `gorm:"type:date;not null" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
