package models

type SiteInfo struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"size:128"`
	Description string `json:"description" gorm:"size:512"`
	ICP         string `json:"icp" gorm:"column:icp;size:64"`
	Footer      string `json:"footer" gorm:"size:256"`
}

func (SiteInfo) TableName() string {
	return "site_info"
}

type Menu struct {
	ID    int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string  `json:"title" gorm:"size:64;not null"`
	Path  *string `json:"path,omitempty" gorm:"size:128"`
	URL   *string `json:"url,omitempty" gorm:"column:url;size:256"`
	// Position orders the navigation bar.
	Position int `json:"-" gorm:"not null;default:0"`
}

func (Menu) TableName() string {
	return "menus"
}
