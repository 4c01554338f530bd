package services

import (
	"context"
	"errors"

	"freelink_backend/internal/logger"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AccountService interface {
	Me(db *gorm.DB, userID string) (*dto.MeResponse, error)
	// DeleteAccount removes the user with its profile and every dependent record
	DeleteAccount(ctx context.Context, db *gorm.DB, userID string) error
}

type AccountServiceImpl struct {
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	vacancyRepo     repositories.VacancyRepository
	applicationRepo repositories.ApplicationRepository
	ratingRepo      repositories.RatingRepository
	paymentRepo     repositories.PaymentRepository
	uploads         UploadService
}

func NewAccountService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	vacancyRepo repositories.VacancyRepository,
	applicationRepo repositories.ApplicationRepository,
	ratingRepo repositories.RatingRepository,
	paymentRepo repositories.PaymentRepository,
	uploads UploadService,
) AccountService {
	return &AccountServiceImpl{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		vacancyRepo:     vacancyRepo,
		applicationRepo: applicationRepo,
		ratingRepo:      ratingRepo,
		paymentRepo:     paymentRepo,
		uploads:         uploads,
	}
}

func (s *AccountServiceImpl) Me(db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NotFound("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MeResponse{User: dto.NewUserResponse(user)}
	switch user.Role {
	case models.UserRoleCompany:
		company, err := s.profileRepo.FindCompanyByUserID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.InternalError(err)
		}
		resp.Company = dto.NewCompanyResponse(company)
	case models.UserRoleFreelancer:
		freelancer, err := s.profileRepo.FindFreelancerByUserID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrFreelancerNotFound) {
			return nil, apperrors.InternalError(err)
		}
		resp.Freelancer = dto.NewFreelancerResponse(freelancer)
	}
	return resp, nil
}

func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, db *gorm.DB, userID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NotFound("user", "User not found")
		}
		return apperrors.InternalError(err)
	}

	var blobs []string
	switch user.Role {
	case models.UserRoleCompany:
		blobs, err = s.deleteCompanyData(tx, userID)
	case models.UserRoleFreelancer:
		blobs, err = s.deleteFreelancerData(tx, userID)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteResetTokens(tx, user.Email); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(tx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return err
	}

	for _, key := range blobs {
		s.uploads.Delete(ctx, key)
	}
	logger.CtxInfo(ctx, "Account deleted", "user_id", user.ID, "role", user.Role)
	return nil
}

func (s *AccountServiceImpl) deleteCompanyData(tx *gorm.DB, userID string) ([]string, error) {
	company, err := s.profileRepo.FindCompanyByUserID(tx, userID)
	if errors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	steps := []func(*gorm.DB, string) error{
		s.ratingRepo.DeleteByCompany,
		s.applicationRepo.DeleteByCompany,
		s.vacancyRepo.DeleteByCompany,
		s.paymentRepo.DeleteTransactions,
		s.paymentRepo.DeleteBalance,
		s.profileRepo.DeleteCompany,
	}
	for _, step := range steps {
		if err := step(tx, company.ID); err != nil {
			return nil, err
		}
	}
	return nonEmpty(company.LogoPath), nil
}

func (s *AccountServiceImpl) deleteFreelancerData(tx *gorm.DB, userID string) ([]string, error) {
	freelancer, err := s.profileRepo.FindFreelancerByUserID(tx, userID)
	if errors.Is(err, repositories.ErrFreelancerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	steps := []func(*gorm.DB, string) error{
		s.ratingRepo.DeleteByFreelancer,
		s.applicationRepo.DeleteByFreelancer,
		s.profileRepo.DeleteFreelancer,
	}
	for _, step := range steps {
		if err := step(tx, freelancer.ID); err != nil {
			return nil, err
		}
	}
	return nonEmpty(freelancer.ResumePath, freelancer.AvatarPath), nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
