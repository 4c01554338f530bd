package handlers

import (
	"net/http"

	"freelink_backend/internal/logger"
	"freelink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewSystemHandler(base *BaseHandler, profileService services.ProfileService) *SystemHandler {
	return &SystemHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *SystemHandler) RegisterRoutes(g *RouteGroups) {
	g.Public.GET("/health", h.Health)
	g.Public.GET("/cities", h.ListCities)
}

// Health godoc
// @Summary Service and database health
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

func (h *SystemHandler) ListCities(c *gin.Context) {
	cities, err := h.profileService.ListCities(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}
