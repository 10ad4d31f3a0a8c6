package handler

import (
	"github.com/gin-gonic/gin"

	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/middleware"
	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

func (h *TaxonomyHandler) RegisterRoutes(router *gin.RouterGroup, gate *middleware.Gate) {
	router.GET("/categories", h.ListCategories)
	router.POST("/categories", gate.RequireIdentity(), h.CreateCategory)
	router.GET("/tags", h.ListTags)
	router.POST("/tags", gate.RequireIdentity(), h.CreateTag)
}

// GET /api/categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	out, err := h.taxonomyService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out, response.MsgSuccess)
}

// POST /api/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := h.taxonomyService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category, "category created")
}

// GET /api/tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	out, err := h.taxonomyService.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out, response.MsgSuccess)
}

// POST /api/tags
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tag, err := h.taxonomyService.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag, "tag created")
}
