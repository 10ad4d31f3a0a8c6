package handler

import (
	"github.com/gin-gonic/gin"

	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/middleware"
	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

type PostHandler struct {
	postService        service.PostService
	interactionService service.InteractionService
}

func NewPostHandler(postService service.PostService, interactionService service.InteractionService) *PostHandler {
	return &PostHandler{
		postService:        postService,
		interactionService: interactionService,
	}
}

func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup, gate *middleware.Gate) {
	posts := router.Group("/posts")
	{
		// Public routes
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
		posts.POST("/:id/view", h.View)
		posts.POST("/:id/like", h.Like)

		// Author routes
		posts.POST("", gate.RequireIdentity(), h.Create)
		posts.PUT("/:id", gate.RequireIdentity(), h.Update)
		posts.DELETE("/:id", gate.RequireIdentity(), h.Delete)
	}

	router.GET("/archive", h.Archive)
}

// List returns one page of posts
// GET /api/posts?page=&size=&search=&category=&tag=&date=
func (h *PostHandler) List(c *gin.Context) {
	var q dto.PostListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.postService.ListPosts(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page, response.MsgSuccess)
}

// GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post, response.MsgSuccess)
}

// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	post, err := h.postService.CreatePost(c.Request.Context(), user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post, "post created")
}

// PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	post, err := h.postService.UpdatePost(c.Request.Context(), id, user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post, "post updated")
}

// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.postService.DeletePost(c.Request.Context(), id, user.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "post deleted")
}

// POST /api/posts/:id/view
func (h *PostHandler) View(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.interactionService.View(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "view +1")
}

// POST /api/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.interactionService.Like(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "like +1")
}

// Archive groups all posts by year
// GET /api/archive
func (h *PostHandler) Archive(c *gin.Context) {
	archive, err := h.postService.GetArchive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, archive, response.MsgSuccess)
}
