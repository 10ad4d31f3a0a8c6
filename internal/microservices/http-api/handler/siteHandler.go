package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

type SiteHandler struct {
	siteService service.SiteService
}

func NewSiteHandler(siteService service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

func (h *SiteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/siteinfo", h.SiteInfo)
	router.GET("/menus", h.Menus)
}

// GET /api/siteinfo
func (h *SiteHandler) SiteInfo(c *gin.Context) {
	info, err := h.siteService.GetSiteInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info, response.MsgSuccess)
}

// GET /api/menus
func (h *SiteHandler) Menus(c *gin.Context) {
	menus, err := h.siteService.ListMenus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, menus, response.MsgSuccess)
}

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Welcome)
	router.GET("/healthz", h.Health)
}

// GET /
func (h *HealthHandler) Welcome(c *gin.Context) {
	response.OK(c, nil, "Welcome to BlogHub API")
}

// Health pings every dependency and reports 503 if any is down.
// GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(c.Request.Context()); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		response.JSON(c, http.StatusServiceUnavailable, status, "unhealthy")
		return
	}
	response.OK(c, status, "ok")
}
