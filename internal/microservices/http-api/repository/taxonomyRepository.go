package repository

import (
	"context"
	"fmt"

	"bloghub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// TaxonomyRepository covers categories and tags. Both are plain named rows.
type TaxonomyRepository interface {
	ListCategoriesWithCounts(ctx context.Context) ([]models.NamedCount, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	CategoryExists(ctx context.Context, id int64) (bool, error)
	ListTagsWithCounts(ctx context.Context) ([]models.NamedCount, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategoriesWithCounts(ctx context.Context) ([]models.NamedCount, error) {
	var out []models.NamedCount
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Select("categories.id, categories.name, COUNT(posts.id) AS count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *taxonomyRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return count > 0, nil
}

func (r *taxonomyRepository) ListTagsWithCounts(ctx context.Context) ([]models.NamedCount, error) {
	var out []models.NamedCount
	err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Select("tags.id, tags.name, COUNT(post_tags.post_id) AS count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}

func (r *taxonomyRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}
