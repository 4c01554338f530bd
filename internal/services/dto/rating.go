package dto

import (
	"time"

	"freelink_backend/internal/models"
)

type CreateRatingRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
	Score         int    `json:"score" validate:"required,gte=1,lte=5"`
	Comment       string `json:"comment" validate:"max=1000"`
}

type RatingResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	CompanyID     string    `json:"company_id"`
	FreelancerID  string    `json:"freelancer_id"`
	Score         int       `json:"score"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RatingSummary struct {
	Average float64           `json:"average"`
	Total   int64             `json:"total"`
	Ratings []*RatingResponse `json:"ratings,omitempty"`
}

type RatingEligibility struct {
	CanRate bool            `json:"can_rate"`
	Reason  string          `json:"reason,omitempty"`
	Rating  *RatingResponse `json:"rating,omitempty"`
}

// WorkedWithResponse is a freelancer the company accepted, with its rating if any
type WorkedWithResponse struct {
	ApplicationID  string          `json:"application_id"`
	FreelancerID   string          `json:"freelancer_id"`
	FreelancerName string          `json:"freelancer_name"`
	Profession     string          `json:"profession"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	VacancyTitle   string          `json:"vacancy_title"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
	Rating         *RatingResponse `json:"rating,omitempty"`
}

func NewRatingResponse(r *models.Rating) *RatingResponse {
	if r == nil {
		return nil
	}
	return &RatingResponse{
		ID:            r.ID,
		ApplicationID: r.ApplicationID,
		CompanyID:     r.CompanyID,
		FreelancerID:  r.FreelancerID,
		Score:         r.Score,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}
