package services

import (
	"errors"
	"strings"

	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// loadCompany resolves the company profile owned by userID
func loadCompany(db *gorm.DB, profileRepo repositories.ProfileRepository, userID string) (*models.Company, error) {
	company, err := profileRepo.FindCompanyByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

// loadFreelancer resolves the freelancer profile owned by userID
func loadFreelancer(db *gorm.DB, profileRepo repositories.ProfileRepository, userID string) (*models.Freelancer, error) {
	freelancer, err := profileRepo.FindFreelancerByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrFreelancerNotFound) {
			return nil, apperrors.ErrFreelancerProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return freelancer, nil
}

// requireRole loads the user and checks its role
func requireRole(db *gorm.DB, userRepo repositories.UserRepository, userID string, role models.UserRole) (*models.User, error) {
	user, err := userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NotFound("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != role {
		return nil, apperrors.ErrInvalidUserRole
	}
	return user, nil
}

func commit(tx *gorm.DB) error {
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
