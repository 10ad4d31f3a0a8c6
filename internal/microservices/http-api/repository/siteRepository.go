package repository

import (
	"context"
	"fmt"

	"bloghub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SiteRepository interface {
	GetSiteInfo(ctx context.Context) (*models.SiteInfo, error)
	ListMenus(ctx context.Context) ([]models.Menu, error)
}

type siteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

// GetSiteInfo returns the single site_info row.
func (r *siteRepository) GetSiteInfo(ctx context.Context) (*models.SiteInfo, error) {
	var info models.SiteInfo
	if err := r.db.WithContext(ctx).Order("id ASC").First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *siteRepository) ListMenus(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}
