package database

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/middleware/auth"
)

//go:embed seed_data.json
var defaultSeed []byte

// ErrAlreadySeeded is returned when the users table is not empty.
var ErrAlreadySeeded = errors.New("database already has data")

// SeedData mirrors seed_data.json.
type SeedData struct {
	Admin struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"admin"`
	Categories []string   `json:"categories"`
	Tags       []string   `json:"tags"`
	Posts      []SeedPost `json:"posts"`
	SiteInfo   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ICP         string `json:"icp"`
		Footer      string `json:"footer"`
	} `json:"site_info"`
	Menus []struct {
		Title string  `json:"title"`
		Path  *string `json:"path"`
		URL   *string `json:"url"`
	} `json:"menus"`
}

type SeedPost struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// SeedReport counts what Seed inserted.
type SeedReport struct {
	Users      int
	Categories int
	Tags       int
	Posts      int
	Menus      int
}

// DefaultSeedData returns the bundled demo content.
func DefaultSeedData() (*SeedData, error) {
	return ReadSeedData(bytes.NewReader(defaultSeed))
}

// ReadSeedData parses seed JSON.
func ReadSeedData(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	if data.Admin.Username == "" || data.Admin.Password == "" {
		return nil, errors.New("seed data needs an admin username and password")
	}
	return &data, nil
}

// Seed inserts the demo content in one transaction. Post dates count back
// from today so the newest post is dated today.
func Seed(ctx context.Context, gdb *gorm.DB, data *SeedData, now time.Time, logger *slog.Logger) (*SeedReport, error) {
	var users int64
	if err := gdb.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		return nil, ErrAlreadySeeded
	}

	hash, err := auth.HashPassword(data.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	report := &SeedReport{}

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := models.User{Username: data.Admin.Username, Password: hash, CreatedAt: today}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		report.Users = 1
		logger.Info("seed_admin_created", "username", admin.Username)

		categories := make(map[string]int64, len(data.Categories))
		for _, name := range data.Categories {
			c := models.Category{Name: name}
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("create category %q: %w", name, err)
			}
			categories[name] = c.ID
		}
		report.Categories = len(categories)

		tags := make(map[string]models.Tag, len(data.Tags))
		for _, name := range data.Tags {
			t := models.Tag{Name: name}
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("create tag %q: %w", name, err)
			}
			tags[name] = t
		}
		report.Tags = len(tags)

		for i, p := range data.Posts {
			post := models.Post{
				Title:    p.Title,
				Content:  p.Content,
				Date:     today.AddDate(0, 0, -(len(data.Posts) - 1 - i)),
				AuthorID: &admin.ID,
				Views:    int64(10 * (i + 1)),
				Likes:    int64(5 * (i + 1)),
			}
			if p.Summary != "" {
				summary := p.Summary
				post.Summary = &summary
			}
			if p.Category != "" {
				id, ok := categories[p.Category]
				if !ok {
					return fmt.Errorf("post %q: unknown category %q", p.Title, p.Category)
				}
				post.CategoryID = &id
			}
			for _, name := range p.Tags {
				t, ok := tags[name]
				if !ok {
					return fmt.Errorf("post %q: unknown tag %q", p.Title, name)
				}
				post.Tags = append(post.Tags, t)
			}
			if err := tx.Omit("Category", "Author").Create(&post).Error; err != nil {
				return fmt.Errorf("create post %q: %w", p.Title, err)
			}
		}
		report.Posts = len(data.Posts)

		info := models.SiteInfo{
			Title:       data.SiteInfo.Title,
			Description: data.SiteInfo.Description,
			ICP:         data.SiteInfo.ICP,
			Footer:      data.SiteInfo.Footer,
		}
		if err := tx.Create(&info).Error; err != nil {
			return fmt.Errorf("create site info: %w", err)
		}

		for i, m := range data.Menus {
			menu := models.Menu{Title: m.Title, Path: m.Path, URL: m.URL, Position: i + 1}
			if err := tx.Create(&menu).Error; err != nil {
				return fmt.Errorf("create menu %q: %w", m.Title, err)
			}
		}
		report.Menus = len(data.Menus)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database_seeded",
		"categories", report.Categories,
		"tags", report.Tags,
		"posts", report.Posts,
		"menus", report.Menus,
	)
	return report, nil
}
