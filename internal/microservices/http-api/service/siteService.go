package service

import (
	"context"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/repository"
)

type SiteService interface {
	GetSiteInfo(ctx context.Context) (*dto.SiteInfoResponse, error)
	ListMenus(ctx context.Context) (*dto.MenuListResponse, error)
}

type siteService struct {
	repo repository.SiteRepository
}

func NewSiteService(repo repository.SiteRepository) SiteService {
	return &siteService{repo: repo}
}

func (s *siteService) GetSiteInfo(ctx context.Context) (*dto.SiteInfoResponse, error) {
	info, err := s.repo.GetSiteInfo(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound("not initialized", nil)
		}
		return nil, apperror.NewInternal("failed to load site info", err)
	}
	return dto.FromModelToSiteInfoResponse(info), nil
}

func (s *siteService) ListMenus(ctx context.Context) (*dto.MenuListResponse, error) {
	menus, err := s.repo.ListMenus(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list menus", err)
	}
	return dto.FromModelsToMenuList(menus), nil
}
