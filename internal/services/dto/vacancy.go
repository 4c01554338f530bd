package dto

import (
	"time"

	"freelink_backend/internal/models"
)

type CreateVacancyRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=150"`
	Description     string   `json:"description" validate:"required,min=10"`
	Requirements    string   `json:"requirements" validate:"required"`
	Salary          *float64 `json:"salary" validate:"omitempty,gte=0"`
	ProjectDuration string   `json:"project_duration" validate:"max=100"`
}

type UpdateVacancyRequest struct {
	Title           *string               `json:"title" validate:"omitempty,min=3,max=150"`
	Description     *string               `json:"description" validate:"omitempty,min=10"`
	Requirements    *string               `json:"requirements" validate:"omitempty,min=1"`
	Salary          *float64              `json:"salary" validate:"omitempty,gte=0"`
	ProjectDuration *string               `json:"project_duration" validate:"omitempty,max=100"`
	Status          *models.VacancyStatus `json:"status" validate:"omitempty,is-vacancy-status"`
}

type ListVacanciesQuery struct {
	Status models.VacancyStatus `form:"status" validate:"omitempty,is-vacancy-status"`
}

type VacancyResponse struct {
	ID                string               `json:"id"`
	CompanyID         string               `json:"company_id"`
	CompanyName       string               `json:"company_name,omitempty"`
	CompanyLogoURL    string               `json:"company_logo_url,omitempty"`
	City              string               `json:"city,omitempty"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Requirements      string               `json:"requirements"`
	Salary            *float64             `json:"salary"`
	ProjectDuration   string               `json:"project_duration,omitempty"`
	Status            models.VacancyStatus `json:"status"`
	PublishedAt       time.Time            `json:"published_at"`
	ApplicationsCount *int64               `json:"applications_count,omitempty"`
}

type CreateVacancyResponse struct {
	Vacancy         *VacancyResponse `json:"vacancy"`
	RemainingTokens int              `json:"remaining_tokens"`
}

func NewVacancyResponse(v *models.Vacancy) *VacancyResponse {
	if v == nil {
		return nil
	}
	resp := &VacancyResponse{
		ID:              v.ID,
		CompanyID:       v.CompanyID,
		Title:           v.Title,
		Description:     v.Description,
		Requirements:    v.Requirements,
		Salary:          v.Salary,
		ProjectDuration: v.ProjectDuration,
		Status:          v.Status,
		PublishedAt:     v.PublishedAt,
	}
	if c := v.Company; c != nil {
		resp.CompanyLogoURL = FileURL(c.LogoPath)
		if c.User != nil {
			resp.CompanyName = c.User.Name
		}
		if c.City != nil {
			resp.City = c.City.Name
		}
	}
	return resp
}
