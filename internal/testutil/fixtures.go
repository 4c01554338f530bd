package testutil

import (
	"fmt"
	"testing"
	"time"

	"freelink_backend/internal/auth"
	"freelink_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DefaultPassword is the plain password of every user created by CreateUser.
const DefaultPassword = "password123"

func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	suffix := uuid.NewString()[:8]
	user := &models.User{
		Name:         fmt.Sprintf("%s %s", role, suffix),
		Email:        fmt.Sprintf("%s-%s@example.com", role, suffix),
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCompany seeds a company user, its profile and a balance holding tokens.
func CreateCompany(t *testing.T, db *gorm.DB, tokens int) (*models.User, *models.Company) {
	t.Helper()

	user := CreateUser(t, db, models.UserRoleCompany)
	company := &models.Company{
		UserID:      user.ID,
		CityID:      FirstCityID(t, db),
		TaxID:       "NIT-" + uuid.NewString()[:12],
		Size:        models.CompanySizeSmall,
		Description: "Test company",
	}
	require.NoError(t, db.Create(company).Error)
	require.NoError(t, db.Create(&models.TokenBalance{CompanyID: company.ID, Available: tokens}).Error)
	return user, company
}

func CreateFreelancer(t *testing.T, db *gorm.DB) (*models.User, *models.Freelancer) {
	t.Helper()

	user := CreateUser(t, db, models.UserRoleFreelancer)
	freelancer := &models.Freelancer{
		UserID:     user.ID,
		CityID:     FirstCityID(t, db),
		Profession: "Backend developer",
		Experience: "5 years of Go",
	}
	require.NoError(t, db.Create(freelancer).Error)
	return user, freelancer
}

// CreateVacancy inserts a vacancy directly, without spending a token.
func CreateVacancy(t *testing.T, db *gorm.DB, company *models.Company, status models.VacancyStatus) *models.Vacancy {
	t.Helper()

	vacancy := &models.Vacancy{
		CompanyID:    company.ID,
		Title:        "Go developer",
		Description:  "Build and run our marketplace API",
		Requirements: "Go, PostgreSQL",
		PublishedAt:  time.Now(),
		Status:       status,
	}
	require.NoError(t, db.Create(vacancy).Error)
	return vacancy
}

func CreateApplication(t *testing.T, db *gorm.DB, freelancer *models.Freelancer, vacancy *models.Vacancy, status models.ApplicationStatus) *models.Application {
	t.Helper()

	application := &models.Application{
		FreelancerID: freelancer.ID,
		VacancyID:    vacancy.ID,
		Status:       status,
		AppliedAt:    time.Now(),
	}
	if status.IsDecision() {
		decided := time.Now()
		application.DecidedAt = &decided
	}
	require.NoError(t, db.Create(application).Error)
	return application
}

func Balance(t *testing.T, db *gorm.DB, companyID string) models.TokenBalance {
	t.Helper()
	var balance models.TokenBalance
	require.NoError(t, db.Where("company_id = ?", companyID).First(&balance).Error)
	return balance
}
