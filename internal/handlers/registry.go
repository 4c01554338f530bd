package handlers

import "github.com/gin-gonic/gin"

// AppHandlers holds every HTTP handler.
type AppHandlers struct {
	SystemHandler      *SystemHandler
	AuthHandler        *AuthHandler
	AccountHandler     *AccountHandler
	ProfileHandler     *ProfileHandler
	VacancyHandler     *VacancyHandler
	ApplicationHandler *ApplicationHandler
	RatingHandler      *RatingHandler
	PaymentHandler     *PaymentHandler
	FileHandler        *FileHandler
}

// RouteGroups are the /api/v1 groups a handler registers into, by access level.
type RouteGroups struct {
	Public        *gin.RouterGroup
	Authenticated *gin.RouterGroup
	Company       *gin.RouterGroup
	Freelancer    *gin.RouterGroup
}

func (h *AppHandlers) RegisterRoutes(g *RouteGroups) {
	h.SystemHandler.RegisterRoutes(g)
	h.AuthHandler.RegisterRoutes(g)
	h.AccountHandler.RegisterRoutes(g)
	h.ProfileHandler.RegisterRoutes(g)
	h.VacancyHandler.RegisterRoutes(g)
	h.ApplicationHandler.RegisterRoutes(g)
	h.RatingHandler.RegisterRoutes(g)
	h.PaymentHandler.RegisterRoutes(g)
	h.FileHandler.RegisterRoutes(g)
}
