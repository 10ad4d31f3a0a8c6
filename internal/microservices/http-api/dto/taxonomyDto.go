package dto

import "bloghub/internal/microservices/http-api/models"

// NameRequest: payload for creating a category or tag
type NameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

type CategoryListResponse struct {
	Categories []models.NamedCount `json:"categories"`
}

type TagListResponse struct {
	Tags []models.NamedCount `json:"tags"`
}
