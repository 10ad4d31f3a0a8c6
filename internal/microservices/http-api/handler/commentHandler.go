package handler

import (
	"github.com/gin-gonic/gin"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/middleware"
	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, gate *middleware.Gate) {
	// Thread of a post
	router.GET("/posts/:id/comments", h.ListByPost)

	comments := router.Group("/comments")
	{
		comments.POST("", gate.ResolveIdentity(), h.Create) // anonymous or signed-in
		comments.GET("/me", gate.RequireIdentity(), h.ListByCurrentUser)
		comments.PUT("/:id", gate.RequireIdentity(), h.Update)    // owner only
		comments.DELETE("/:id", gate.RequireIdentity(), h.Delete) // owner only
	}
}

// ListByPost returns the comment forest of a post
// GET /api/posts/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tree, err := h.commentService.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tree, response.MsgSuccess)
}

// Create creates a new comment or reply
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment, "comment created")
}

// Update updates an existing comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, user.ID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comment, "comment updated")
}

// Delete deletes a comment; its replies become top-level comments
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, user.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "comment deleted")
}

// ListByCurrentUser lists the caller's comments
// GET /api/comments/me
func (h *CommentHandler) ListByCurrentUser(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.NewUnauthorized(service.MsgInvalidToken, nil))
		return
	}

	page, err := h.commentService.GetUserComments(c.Request.Context(), user.ID, q.Page, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page, response.MsgSuccess)
}
