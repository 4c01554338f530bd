package services

import (
	"errors"

	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RatingService interface {
	Rate(db *gorm.DB, userID string, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
	// Summary is keyed by the freelancer's user id
	Summary(db *gorm.DB, freelancerUserID string) (*dto.RatingSummary, error)
	CanRate(db *gorm.DB, userID, applicationID string) (*dto.RatingEligibility, error)
	WorkedWith(db *gorm.DB, userID string) ([]*dto.WorkedWithResponse, error)
}

type RatingServiceImpl struct {
	profileRepo     repositories.ProfileRepository
	applicationRepo repositories.ApplicationRepository
	ratingRepo      repositories.RatingRepository
}

func NewRatingService(
	profileRepo repositories.ProfileRepository,
	applicationRepo repositories.ApplicationRepository,
	ratingRepo repositories.RatingRepository,
) RatingService {
	return &RatingServiceImpl{
		profileRepo:     profileRepo,
		applicationRepo: applicationRepo,
		ratingRepo:      ratingRepo,
	}
}

func (s *RatingServiceImpl) Rate(db *gorm.DB, userID string, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, apperrors.ErrInvalidScore
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	company, err := loadCompany(tx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	application, err := s.applicationRepo.FindByID(tx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationMissing) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Status != models.ApplicationStatusAccepted {
		return nil, apperrors.ErrApplicationNotAccepted
	}
	if application.Vacancy == nil || application.Vacancy.CompanyID != company.ID {
		return nil, apperrors.ErrNotVacancyOwner
	}

	rating := &models.Rating{
		ApplicationID: application.ID,
		CompanyID:     company.ID,
		FreelancerID:  application.FreelancerID,
		Score:         req.Score,
		Comment:       req.Comment,
	}
	if err := s.ratingRepo.Create(tx, rating); err != nil {
		if errors.Is(err, repositories.ErrRatingExists) {
			return nil, apperrors.ErrAlreadyRated
		}
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return dto.NewRatingResponse(rating), nil
}

func (s *RatingServiceImpl) Summary(db *gorm.DB, freelancerUserID string) (*dto.RatingSummary, error) {
	freelancer, err := loadFreelancer(db, s.profileRepo, freelancerUserID)
	if err != nil {
		return nil, err
	}

	summary, err := s.ratingRepo.Summary(db, freelancer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ratings, err := s.ratingRepo.ListByFreelancer(db, freelancer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.RatingSummary{
		Average: roundAverage(summary.Average),
		Total:   summary.Total,
		Ratings: make([]*dto.RatingResponse, 0, len(ratings)),
	}
	for i := range ratings {
		resp.Ratings = append(resp.Ratings, dto.NewRatingResponse(&ratings[i]))
	}
	return resp, nil
}

// CanRate mirrors Rate's rules but answers with a reason instead of an error
func (s *RatingServiceImpl) CanRate(db *gorm.DB, userID, applicationID string) (*dto.RatingEligibility, error) {
	company, err := s.profileRepo.FindCompanyByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return &dto.RatingEligibility{Reason: "Company profile not found"}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationMissing) {
			return &dto.RatingEligibility{Reason: "Application not found"}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Vacancy == nil || application.Vacancy.CompanyID != company.ID {
		return &dto.RatingEligibility{Reason: "Application does not belong to your vacancies"}, nil
	}
	if application.Status != models.ApplicationStatusAccepted {
		return &dto.RatingEligibility{Reason: "Only accepted applications can be rated"}, nil
	}

	rating, err := s.ratingRepo.FindByApplication(db, application.ID)
	if err == nil {
		return &dto.RatingEligibility{
			Reason: "Already rated",
			Rating: dto.NewRatingResponse(rating),
		}, nil
	}
	if !errors.Is(err, repositories.ErrRatingNotFound) {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RatingEligibility{CanRate: true}, nil
}

func (s *RatingServiceImpl) WorkedWith(db *gorm.DB, userID string) ([]*dto.WorkedWithResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListAcceptedByCompany(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(applications))
	for _, a := range applications {
		ids = append(ids, a.ID)
	}
	ratings, err := s.ratingRepo.FindByApplications(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.WorkedWithResponse, 0, len(applications))
	for _, a := range applications {
		item := &dto.WorkedWithResponse{
			ApplicationID: a.ID,
			FreelancerID:  a.FreelancerID,
			DecidedAt:     a.DecidedAt,
		}
		if a.Vacancy != nil {
			item.VacancyTitle = a.Vacancy.Title
		}
		if f := a.Freelancer; f != nil {
			item.Profession = f.Profession
			item.AvatarURL = dto.FileURL(f.AvatarPath)
			if f.User != nil {
				item.FreelancerName = f.User.Name
			}
		}
		if rating, ok := ratings[a.ID]; ok {
			item.Rating = dto.NewRatingResponse(&rating)
		}
		out = append(out, item)
	}
	return out, nil
}
