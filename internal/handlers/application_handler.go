package handlers

import (
	"net/http"

	"freelink_backend/internal/services"
	"freelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(g *RouteGroups) {
	// Freelancer
	g.Freelancer.POST("/vacancies/:id/applications", h.Submit)
	g.Freelancer.GET("/vacancies/:id/application", h.Check)
	g.Freelancer.GET("/freelancer/applications", h.ListMine)
	g.Freelancer.GET("/freelancer/applications/recent-changes", h.RecentChanges)
	g.Freelancer.DELETE("/applications/:id", h.Cancel)

	// Company
	g.Company.GET("/company/applications", h.ListForCompany)
	g.Company.GET("/company/notifications/new-applications", h.NewForCompany)
	g.Company.PUT("/applications/:id/status", h.UpdateStatus)
}

// Submit godoc
// @Summary Apply to a vacancy
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vacancy id"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse "Vacancy closed"
// @Failure 409 {object} apperrors.ErrorResponse "Already applied"
// @Router /api/v1/vacancies/{id}/applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Submit(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) Check(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	check, err := h.applicationService.Check(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListMine(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) RecentChanges(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.RecentChanges(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.applicationService.Cancel(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) ListForCompany(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.CompanyApplicationsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	applications, err := h.applicationService.ListForCompany(h.GetDB(c), userID, query.VacancyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) NewForCompany(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.NewForCompany(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// UpdateStatus godoc
// @Summary Accept or reject a pending application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application id"
// @Param request body dto.UpdateApplicationStatusRequest true "accepted or rejected"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse "Not pending or bad status"
// @Failure 403 {object} apperrors.ErrorResponse "Not the vacancy owner"
// @Router /api/v1/applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.Transition(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
