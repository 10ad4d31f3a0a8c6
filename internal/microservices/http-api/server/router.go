// Package server assembles the HTTP API: middleware chain, routes and CORS.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"bloghub/internal/microservices/http-api/handler"
	"bloghub/internal/microservices/http-api/middleware"
	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

// Deps are the services the router exposes.
type Deps struct {
	Logger         *slog.Logger
	Auth           service.AuthService
	Posts          service.PostService
	Comments       service.CommentService
	Taxonomy       service.TaxonomyService
	Site           service.SiteService
	Interactions   service.InteractionService
	HealthChecks   map[string]handler.Pinger
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// NewEngine builds the gin engine with every route registered.
func NewEngine(deps Deps) *gin.Engine {
	response.RegisterValidatorTagNames()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(response.Recovery(deps.Logger))
	if deps.RequestTimeout > 0 {
		r.Use(middleware.RequestTimeout(deps.RequestTimeout))
	}
	r.NoRoute(response.NoRoute)

	gate := middleware.NewGate(deps.Auth)

	handler.NewHealthHandler(deps.HealthChecks).RegisterRoutes(r)

	api := r.Group("/api")
	handler.NewAuthHandler(deps.Auth).RegisterRoutes(api, gate)
	handler.NewPostHandler(deps.Posts, deps.Interactions).RegisterRoutes(api, gate)
	handler.NewCommentHandler(deps.Comments).RegisterRoutes(api, gate)
	handler.NewTaxonomyHandler(deps.Taxonomy).RegisterRoutes(api, gate)
	handler.NewSiteHandler(deps.Site).RegisterRoutes(api)

	return r
}

// NewHandler wraps the engine with CORS.
func NewHandler(deps Deps) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(NewEngine(deps))
}
