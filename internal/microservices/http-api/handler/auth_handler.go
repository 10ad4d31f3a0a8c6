package handler

import (
	"github.com/gin-gonic/gin"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/middleware"
	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, gate *middleware.Gate) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.GET("/self", gate.RequireIdentity(), h.Self)
}

// Register handles user registration
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.RegisterResponse{
		ID:       result.User.ID,
		Username: result.User.Username,
		Token:    result.Token,
	}, "registered")
}

// Login handles user login
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AuthResponse{
		ID:        result.User.ID,
		Username:  result.User.Username,
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.authService.TokenTTL().Seconds()),
	}, "login success")
}

// Logout is stateless: the client discards its token, which stays valid until expiry.
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, nil, "logout success")
}

// Self returns the authenticated user
// GET /api/self
func (h *AuthHandler) Self(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.NewUnauthorized(service.MsgInvalidToken, nil))
		return
	}
	response.OK(c, dto.UserResponse{ID: user.ID, Username: user.Username}, "whoami")
}
