package handlers

import (
	"net/http"

	"freelink_backend/internal/services"
	"freelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VacancyHandler struct {
	*BaseHandler
	vacancyService services.VacancyService
}

func NewVacancyHandler(base *BaseHandler, vacancyService services.VacancyService) *VacancyHandler {
	return &VacancyHandler{
		BaseHandler:    base,
		vacancyService: vacancyService,
	}
}

func (h *VacancyHandler) RegisterRoutes(g *RouteGroups) {
	g.Public.GET("/vacancies", h.List)
	g.Public.GET("/vacancies/:id", h.Get)

	company := g.Company.Group("/company/vacancies")
	{
		company.POST("", h.Create)
		company.GET("", h.ListMine)
		company.PUT("/:id", h.Update)
		company.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary List vacancies
// @Tags vacancies
// @Produce json
// @Param status query string false "open (default) or closed"
// @Success 200 {array} dto.VacancyResponse
// @Router /api/v1/vacancies [get]
func (h *VacancyHandler) List(c *gin.Context) {
	var query dto.ListVacanciesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	vacancies, err := h.vacancyService.List(h.GetDB(c), query.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacancies)
}

func (h *VacancyHandler) Get(c *gin.Context) {
	vacancy, err := h.vacancyService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacancy)
}

// Create godoc
// @Summary Publish a vacancy
// @Description Spends one token of the company balance.
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVacancyRequest true "Vacancy"
// @Success 201 {object} dto.CreateVacancyResponse
// @Failure 402 {object} apperrors.ErrorResponse "No tokens left; details.available_tokens"
// @Failure 404 {object} apperrors.ErrorResponse "Company profile not found"
// @Router /api/v1/company/vacancies [post]
func (h *VacancyHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateVacancyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.vacancyService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VacancyHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	vacancies, err := h.vacancyService.ListMine(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacancies)
}

func (h *VacancyHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateVacancyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	vacancy, err := h.vacancyService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacancy)
}

func (h *VacancyHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.vacancyService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
