package dto

import (
	"time"

	"freelink_backend/internal/models"
)

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-decision"`
}

type CompanyApplicationsQuery struct {
	VacancyID string `form:"vacancy_id"`
}

// ApplicationResponse is shared by freelancer and company listings; each side fills its own fields.
type ApplicationResponse struct {
	ID           string                   `json:"id"`
	VacancyID    string                   `json:"vacancy_id"`
	VacancyTitle string                   `json:"vacancy_title,omitempty"`
	CompanyName  string                   `json:"company_name,omitempty"`
	Status       models.ApplicationStatus `json:"status"`
	AppliedAt    time.Time                `json:"applied_at"`
	DecidedAt    *time.Time               `json:"decided_at,omitempty"`

	FreelancerID     string `json:"freelancer_id,omitempty"`
	FreelancerUserID string `json:"freelancer_user_id,omitempty"`
	FreelancerName   string `json:"freelancer_name,omitempty"`
	FreelancerEmail  string `json:"freelancer_email,omitempty"`
	Profession       string `json:"profession,omitempty"`
	ResumeURL        string `json:"resume_url,omitempty"`
}

type ApplicationCheckResponse struct {
	Applied       bool                     `json:"applied"`
	ApplicationID string                   `json:"application_id,omitempty"`
	Status        models.ApplicationStatus `json:"status,omitempty"`
}

func newApplicationBase(a *models.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:        a.ID,
		VacancyID: a.VacancyID,
		Status:    a.Status,
		AppliedAt: a.AppliedAt,
		DecidedAt: a.DecidedAt,
	}
	if v := a.Vacancy; v != nil {
		resp.VacancyTitle = v.Title
		if v.Company != nil && v.Company.User != nil {
			resp.CompanyName = v.Company.User.Name
		}
	}
	return resp
}

// NewFreelancerApplicationResponse is the freelancer's view: vacancy and company
func NewFreelancerApplicationResponse(a *models.Application) *ApplicationResponse {
	return newApplicationBase(a)
}

// NewCompanyApplicationResponse is the company's view: who applied
func NewCompanyApplicationResponse(a *models.Application) *ApplicationResponse {
	resp := newApplicationBase(a)
	resp.FreelancerID = a.FreelancerID
	if f := a.Freelancer; f != nil {
		resp.FreelancerUserID = f.UserID
		resp.Profession = f.Profession
		resp.ResumeURL = FileURL(f.ResumePath)
		if f.User != nil {
			resp.FreelancerName = f.User.Name
			resp.FreelancerEmail = f.User.Email
		}
	}
	return resp
}
