package dto

import (
	"time"

	"freelink_backend/internal/models"
)

type CityResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ============================================
// Company
// ============================================

type CreateCompanyProfileRequest struct {
	CityID      uint               `json:"city_id" form:"city_id" validate:"required"`
	TaxID       string             `json:"tax_id" form:"tax_id" validate:"required,min=5,max=30"`
	Size        models.CompanySize `json:"size" form:"size" validate:"required,is-company-size"`
	Description string             `json:"description" form:"description" validate:"max=2000"`
}

// UpdateCompanyProfileRequest - nil fields are left untouched
type UpdateCompanyProfileRequest struct {
	CityID      *uint               `json:"city_id" form:"city_id" validate:"omitempty,gt=0"`
	TaxID       *string             `json:"tax_id" form:"tax_id" validate:"omitempty,min=5,max=30"`
	Size        *models.CompanySize `json:"size" form:"size" validate:"omitempty,is-company-size"`
	Description *string             `json:"description" form:"description" validate:"omitempty,max=2000"`
}

type CompanyResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Name        string             `json:"name"`
	Email       string             `json:"email,omitempty"`
	City        *CityResponse      `json:"city,omitempty"`
	TaxID       string             `json:"tax_id"`
	Size        models.CompanySize `json:"size"`
	Description string             `json:"description"`
	LogoURL     string             `json:"logo_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ============================================
// Freelancer
// ============================================

type CreateFreelancerProfileRequest struct {
	CityID       uint   `json:"city_id" form:"city_id" validate:"required"`
	Profession   string `json:"profession" form:"profession" validate:"required,min=2,max=100"`
	Experience   string `json:"experience" form:"experience" validate:"max=5000"`
	PortfolioURL string `json:"portfolio_url" form:"portfolio_url" validate:"omitempty,url"`
}

type UpdateFreelancerProfileRequest struct {
	CityID       *uint   `json:"city_id" form:"city_id" validate:"omitempty,gt=0"`
	Profession   *string `json:"profession" form:"profession" validate:"omitempty,min=2,max=100"`
	Experience   *string `json:"experience" form:"experience" validate:"omitempty,max=5000"`
	PortfolioURL *string `json:"portfolio_url" form:"portfolio_url" validate:"omitempty,url"`
}

type FreelancerResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	Email        string         `json:"email,omitempty"`
	City         *CityResponse  `json:"city,omitempty"`
	Profession   string         `json:"profession"`
	Experience   string         `json:"experience"`
	PortfolioURL string         `json:"portfolio_url,omitempty"`
	ResumeURL    string         `json:"resume_url,omitempty"`
	AvatarURL    string         `json:"avatar_url,omitempty"`
	Rating       *RatingSummary `json:"rating,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewCityResponse(c *models.City) *CityResponse {
	if c == nil {
		return nil
	}
	return &CityResponse{ID: c.ID, Name: c.Name}
}

// NewCompanyResponse maps a company with its preloaded user and city
func NewCompanyResponse(c *models.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	resp := &CompanyResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		City:        NewCityResponse(c.City),
		TaxID:       c.TaxID,
		Size:        c.Size,
		Description: c.Description,
		LogoURL:     FileURL(c.LogoPath),
		CreatedAt:   c.CreatedAt,
	}
	if c.User != nil {
		resp.Name = c.User.Name
		resp.Email = c.User.Email
	}
	return resp
}

func NewFreelancerResponse(f *models.Freelancer) *FreelancerResponse {
	if f == nil {
		return nil
	}
	resp := &FreelancerResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		City:         NewCityResponse(f.City),
		Profession:   f.Profession,
		Experience:   f.Experience,
		PortfolioURL: f.PortfolioURL,
		ResumeURL:    FileURL(f.ResumePath),
		AvatarURL:    FileURL(f.AvatarPath),
		CreatedAt:    f.CreatedAt,
	}
	if f.User != nil {
		resp.Name = f.User.Name
		resp.Email = f.User.Email
	}
	return resp
}
