package service

import (
	"context"
	"strings"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/microservices/http-api/repository"
)

type TaxonomyService interface {
	ListCategories(ctx context.Context) (*dto.CategoryListResponse, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListTags(ctx context.Context) (*dto.TagListResponse, error)
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
}

type taxonomyService struct {
	repo repository.TaxonomyRepository
}

func NewTaxonomyService(repo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{repo: repo}
}

func (s *taxonomyService) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	counts, err := s.repo.ListCategoriesWithCounts(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list categories", err)
	}
	if counts == nil {
		counts = []models.NamedCount{}
	}
	return &dto.CategoryListResponse{Categories: counts}, nil
}

func (s *taxonomyService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(name)}
	if category.Name == "" {
		return nil, apperror.NewValidation("invalid request", map[string]string{"name": "is required"})
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewConflict("category already exists", err)
		}
		return nil, apperror.NewInternal("failed to create category", err)
	}
	return category, nil
}

func (s *taxonomyService) ListTags(ctx context.Context) (*dto.TagListResponse, error) {
	counts, err := s.repo.ListTagsWithCounts(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list tags", err)
	}
	if counts == nil {
		counts = []models.NamedCount{}
	}
	return &dto.TagListResponse{Tags: counts}, nil
}

func (s *taxonomyService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{Name: strings.TrimSpace(name)}
	if tag.Name == "" {
		return nil, apperror.NewValidation("invalid request", map[string]string{"name": "is required"})
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewConflict("tag already exists", err)
		}
		return nil, apperror.NewInternal("failed to create tag", err)
	}
	return tag, nil
}
