package routes

import (
	"freelink_backend/internal/handlers"
	"freelink_backend/internal/middleware"
	"freelink_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API under /api/v1. authMW guards every group but Public.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	api := ginRouter.Group("/api/v1")
	authenticated := api.Group("", authMW)

	appHandlers.RegisterRoutes(&handlers.RouteGroups{
		Public:        api,
		Authenticated: authenticated,
		Company:       authenticated.Group("", middleware.RequireRoles(models.UserRoleCompany)),
		Freelancer:    authenticated.Group("", middleware.RequireRoles(models.UserRoleFreelancer)),
	})
}
