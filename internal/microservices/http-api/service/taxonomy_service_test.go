package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/models"
)

func TestCreateCategory_Duplicate(t *testing.T) {
	repo := new(MockTaxonomyRepository)
	svc := NewTaxonomyService(repo)

	repo.On("CreateCategory", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.CreateCategory(context.Background(), "Go")
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestCreateTag_TrimsName(t *testing.T) {
	repo := new(MockTaxonomyRepository)
	svc := NewTaxonomyService(repo)

	repo.On("CreateTag", mock.Anything, mock.MatchedBy(func(tag *models.Tag) bool {
		return tag.Name == "Docker"
	})).Return(nil)

	tag, err := svc.CreateTag(context.Background(), "  Docker ")
	require.NoError(t, err)
	assert.Equal(t, "Docker", tag.Name)

	_, err = svc.CreateTag(context.Background(), "   ")
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestListCategories_NeverNil(t *testing.T) {
	repo := new(MockTaxonomyRepository)
	svc := NewTaxonomyService(repo)

	repo.On("ListCategoriesWithCounts", mock.Anything).Return([]models.NamedCount(nil), nil)

	resp, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Categories)
}
