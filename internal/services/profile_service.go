package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	ListCities(db *gorm.DB) ([]*dto.CityResponse, error)

	CreateCompanyProfile(db *gorm.DB, userID string, req *dto.CreateCompanyProfileRequest) (*dto.CompanyResponse, error)
	UpdateCompanyProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCompanyProfileRequest, logo *dto.Upload) (*dto.CompanyResponse, error)
	GetCompanyProfile(db *gorm.DB, userID string) (*dto.CompanyResponse, error)
	GetPublicCompany(db *gorm.DB, userID string) (*dto.CompanyResponse, error)

	CreateFreelancerProfile(db *gorm.DB, userID string, req *dto.CreateFreelancerProfileRequest) (*dto.FreelancerResponse, error)
	UpdateFreelancerProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateFreelancerProfileRequest, resume, avatar *dto.Upload) (*dto.FreelancerResponse, error)
	GetFreelancerProfile(db *gorm.DB, userID string) (*dto.FreelancerResponse, error)
	GetPublicFreelancer(db *gorm.DB, userID string) (*dto.FreelancerResponse, error)
}

type ProfileServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	paymentRepo   repositories.PaymentRepository
	ratingRepo    repositories.RatingRepository
	uploads       UploadService
	welcomeTokens int
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	paymentRepo repositories.PaymentRepository,
	ratingRepo repositories.RatingRepository,
	uploads UploadService,
	welcomeTokens int,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		paymentRepo:   paymentRepo,
		ratingRepo:    ratingRepo,
		uploads:       uploads,
		welcomeTokens: welcomeTokens,
	}
}

func (s *ProfileServiceImpl) ListCities(db *gorm.DB) ([]*dto.CityResponse, error) {
	cities, err := s.profileRepo.ListCities(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CityResponse, 0, len(cities))
	for i := range cities {
		out = append(out, dto.NewCityResponse(&cities[i]))
	}
	return out, nil
}

func (s *ProfileServiceImpl) checkCity(db *gorm.DB, cityID uint) error {
	if _, err := s.profileRepo.FindCity(db, cityID); err != nil {
		if errors.Is(err, repositories.ErrCityNotFound) {
			return apperrors.ErrCityNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ==========================
// Company
// ==========================

func (s *ProfileServiceImpl) CreateCompanyProfile(db *gorm.DB, userID string, req *dto.CreateCompanyProfileRequest) (*dto.CompanyResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := requireRole(tx, s.userRepo, userID, models.UserRoleCompany); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.FindCompanyByUserID(tx, userID); err == nil {
		return nil, apperrors.ErrProfileAlreadyExists
	} else if !errors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}

	taxID := strings.TrimSpace(req.TaxID)
	taken, err := s.profileRepo.TaxIDTaken(tx, taxID, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrTaxIDAlreadyExists
	}
	if err := s.checkCity(tx, req.CityID); err != nil {
		return nil, err
	}

	company := &models.Company{
		UserID:      userID,
		CityID:      req.CityID,
		TaxID:       taxID,
		Size:        req.Size,
		Description: req.Description,
	}
	if err := s.profileRepo.CreateCompany(tx, company); err != nil {
		if errors.Is(err, repositories.ErrProfileExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.paymentRepo.CreateBalance(tx, &models.TokenBalance{
		CompanyID: company.ID,
		Available: s.welcomeTokens,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created, err := s.profileRepo.FindCompanyByID(tx, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return dto.NewCompanyResponse(created), nil
}

func (s *ProfileServiceImpl) UpdateCompanyProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateCompanyProfileRequest, logo *dto.Upload) (*dto.CompanyResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	var stored string
	if logo != nil {
		file, err := s.uploads.Save(ctx, userID, CategoryLogos, logo)
		if err != nil {
			return nil, err
		}
		stored = file.Key
	}

	updated, err := s.applyCompanyUpdate(db, company, req, stored)
	if err != nil {
		s.uploads.Delete(ctx, stored)
		return nil, err
	}

	if stored != "" && company.LogoPath != "" && company.LogoPath != stored {
		s.uploads.Delete(ctx, company.LogoPath)
	}
	return dto.NewCompanyResponse(updated), nil
}

func (s *ProfileServiceImpl) applyCompanyUpdate(db *gorm.DB, company *models.Company, req *dto.UpdateCompanyProfileRequest, logoKey string) (*models.Company, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	fields := map[string]interface{}{}
	if req != nil {
		if req.CityID != nil {
			if err := s.checkCity(tx, *req.CityID); err != nil {
				return nil, err
			}
			fields["city_id"] = *req.CityID
		}
		if req.TaxID != nil {
			taxID := strings.TrimSpace(*req.TaxID)
			taken, err := s.profileRepo.TaxIDTaken(tx, taxID, company.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if taken {
				return nil, apperrors.ErrTaxIDAlreadyExists
			}
			fields["tax_id"] = taxID
		}
		if req.Size != nil {
			fields["size"] = *req.Size
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
	}
	if logoKey != "" {
		fields["logo_path"] = logoKey
	}

	if err := s.profileRepo.UpdateCompany(tx, company.ID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	updated, err := s.profileRepo.FindCompanyByID(tx, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProfileServiceImpl) GetCompanyProfile(db *gorm.DB, userID string) (*dto.CompanyResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *ProfileServiceImpl) GetPublicCompany(db *gorm.DB, userID string) (*dto.CompanyResponse, error) {
	resp, err := s.GetCompanyProfile(db, userID)
	if err != nil {
		return nil, err
	}
	resp.Email = ""
	return resp, nil
}

// ==========================
// Freelancer
// ==========================

func (s *ProfileServiceImpl) CreateFreelancerProfile(db *gorm.DB, userID string, req *dto.CreateFreelancerProfileRequest) (*dto.FreelancerResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := requireRole(tx, s.userRepo, userID, models.UserRoleFreelancer); err != nil {
		return nil, err
	}

	if _, err := s.profileRepo.FindFreelancerByUserID(tx, userID); err == nil {
		return nil, apperrors.ErrProfileAlreadyExists
	} else if !errors.Is(err, repositories.ErrFreelancerNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if err := s.checkCity(tx, req.CityID); err != nil {
		return nil, err
	}

	freelancer := &models.Freelancer{
		UserID:       userID,
		CityID:       req.CityID,
		Profession:   strings.TrimSpace(req.Profession),
		Experience:   req.Experience,
		PortfolioURL: req.PortfolioURL,
	}
	if err := s.profileRepo.CreateFreelancer(tx, freelancer); err != nil {
		if errors.Is(err, repositories.ErrProfileExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	created, err := s.profileRepo.FindFreelancerByID(tx, freelancer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return dto.NewFreelancerResponse(created), nil
}

func (s *ProfileServiceImpl) UpdateFreelancerProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateFreelancerProfileRequest, resume, avatar *dto.Upload) (*dto.FreelancerResponse, error) {
	freelancer, err := loadFreelancer(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	var resumeKey, avatarKey string
	if resume != nil {
		file, err := s.uploads.Save(ctx, userID, CategoryResumes, resume)
		if err != nil {
			return nil, err
		}
		resumeKey = file.Key
	}
	if avatar != nil {
		file, err := s.uploads.Save(ctx, userID, CategoryAvatars, avatar)
		if err != nil {
			s.uploads.Delete(ctx, resumeKey)
			return nil, err
		}
		avatarKey = file.Key
	}

	updated, err := s.applyFreelancerUpdate(db, freelancer, req, resumeKey, avatarKey)
	if err != nil {
		s.uploads.Delete(ctx, resumeKey)
		s.uploads.Delete(ctx, avatarKey)
		return nil, err
	}

	if resumeKey != "" && freelancer.ResumePath != "" && freelancer.ResumePath != resumeKey {
		s.uploads.Delete(ctx, freelancer.ResumePath)
	}
	if avatarKey != "" && freelancer.AvatarPath != "" && freelancer.AvatarPath != avatarKey {
		s.uploads.Delete(ctx, freelancer.AvatarPath)
	}
	return dto.NewFreelancerResponse(updated), nil
}

func (s *ProfileServiceImpl) applyFreelancerUpdate(db *gorm.DB, freelancer *models.Freelancer, req *dto.UpdateFreelancerProfileRequest, resumeKey, avatarKey string) (*models.Freelancer, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	fields := map[string]interface{}{}
	if req != nil {
		if req.CityID != nil {
			if err := s.checkCity(tx, *req.CityID); err != nil {
				return nil, err
			}
			fields["city_id"] = *req.CityID
		}
		if req.Profession != nil {
			fields["profession"] = strings.TrimSpace(*req.Profession)
		}
		if req.Experience != nil {
			fields["experience"] = *req.Experience
		}
		if req.PortfolioURL != nil {
			fields["portfolio_url"] = *req.PortfolioURL
		}
	}
	if resumeKey != "" {
		fields["resume_path"] = resumeKey
	}
	if avatarKey != "" {
		fields["avatar_path"] = avatarKey
	}

	if err := s.profileRepo.UpdateFreelancer(tx, freelancer.ID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	updated, err := s.profileRepo.FindFreelancerByID(tx, freelancer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProfileServiceImpl) GetFreelancerProfile(db *gorm.DB, userID string) (*dto.FreelancerResponse, error) {
	freelancer, err := loadFreelancer(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewFreelancerResponse(freelancer), nil
}

// GetPublicFreelancer hides the email and adds the rating summary
func (s *ProfileServiceImpl) GetPublicFreelancer(db *gorm.DB, userID string) (*dto.FreelancerResponse, error) {
	freelancer, err := loadFreelancer(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.ratingRepo.Summary(db, freelancer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewFreelancerResponse(freelancer)
	resp.Email = ""
	resp.Rating = &dto.RatingSummary{
		Average: roundAverage(summary.Average),
		Total:   summary.Total,
	}
	return resp, nil
}

func roundAverage(avg float64) float64 {
	return math.Round(avg*10) / 10
}
