package handlers

import (
	"net/http"

	"freelink_backend/internal/services"
	"freelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(g *RouteGroups) {
	g.Public.GET("/companies/:userId", h.GetPublicCompany)
	g.Public.GET("/freelancers/:userId", h.GetPublicFreelancer)

	company := g.Company.Group("/company/profile")
	{
		company.GET("", h.GetCompanyProfile)
		company.POST("", h.CreateCompanyProfile)
		company.PUT("", h.UpdateCompanyProfile)
	}

	freelancer := g.Freelancer.Group("/freelancer/profile")
	{
		freelancer.GET("", h.GetFreelancerProfile)
		freelancer.POST("", h.CreateFreelancerProfile)
		freelancer.PUT("", h.UpdateFreelancerProfile)
	}
}

// ============================================
// Company
// ============================================

// CreateCompanyProfile godoc
// @Summary Create the caller's company profile
// @Description Also opens the token balance with the welcome tokens.
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCompanyProfileRequest true "Profile"
// @Success 201 {object} dto.CompanyResponse
// @Failure 404 {object} apperrors.ErrorResponse "City not found"
// @Failure 409 {object} apperrors.ErrorResponse "Profile or tax id already exists"
// @Router /api/v1/company/profile [post]
func (h *ProfileHandler) CreateCompanyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateCompanyProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateCompanyProfile accepts JSON or a multipart form with an optional "logo" file.
func (h *ProfileHandler) UpdateCompanyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	logo, closeLogo, err := h.FormUpload(c, "logo")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer closeLogo()

	profile, err := h.profileService.UpdateCompanyProfile(c.Request.Context(), h.GetDB(c), userID, &req, logo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetCompanyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetCompanyProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetPublicCompany(c *gin.Context) {
	profile, err := h.profileService.GetPublicCompany(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ============================================
// Freelancer
// ============================================

func (h *ProfileHandler) CreateFreelancerProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFreelancerProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateFreelancerProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateFreelancerProfile accepts JSON or a multipart form with optional "resume" and "avatar" files.
func (h *ProfileHandler) UpdateFreelancerProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateFreelancerProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resume, closeResume, err := h.FormUpload(c, "resume")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer closeResume()

	avatar, closeAvatar, err := h.FormUpload(c, "avatar")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer closeAvatar()

	profile, err := h.profileService.UpdateFreelancerProfile(c.Request.Context(), h.GetDB(c), userID, &req, resume, avatar)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetFreelancerProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetFreelancerProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetPublicFreelancer godoc
// @Summary Public freelancer profile with rating summary
// @Tags freelancers
// @Produce json
// @Param userId path string true "Freelancer user id"
// @Success 200 {object} dto.FreelancerResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/freelancers/{userId} [get]
func (h *ProfileHandler) GetPublicFreelancer(c *gin.Context) {
	profile, err := h.profileService.GetPublicFreelancer(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
