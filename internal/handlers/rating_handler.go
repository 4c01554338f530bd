package handlers

import (
	"net/http"

	"freelink_backend/internal/services"
	"freelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	*BaseHandler
	ratingService services.RatingService
}

func NewRatingHandler(base *BaseHandler, ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		BaseHandler:   base,
		ratingService: ratingService,
	}
}

func (h *RatingHandler) RegisterRoutes(g *RouteGroups) {
	g.Public.GET("/freelancers/:userId/ratings", h.Summary)

	g.Company.POST("/ratings", h.Rate)
	g.Company.GET("/ratings/eligibility/:applicationId", h.CanRate)
	g.Company.GET("/company/freelancers", h.WorkedWith)
}

func (h *RatingHandler) Rate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	rating, err := h.ratingService.Rate(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) Summary(c *gin.Context) {
	summary, err := h.ratingService.Summary(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RatingHandler) CanRate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	eligibility, err := h.ratingService.CanRate(h.GetDB(c), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligibility)
}

func (h *RatingHandler) WorkedWith(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	freelancers, err := h.ratingService.WorkedWith(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, freelancers)
}
