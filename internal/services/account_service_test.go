package services

import (
	"context"
	"net/http"
	"testing"

	"freelink_backend/internal/imageprocessor"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/storage"
	"freelink_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccountService(t *testing.T) (AccountService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	store, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)

	svc := NewAccountService(
		repositories.NewUserRepository(),
		repositories.NewProfileRepository(),
		repositories.NewVacancyRepository(),
		repositories.NewApplicationRepository(),
		repositories.NewRatingRepository(),
		repositories.NewPaymentRepository(),
		NewUploadService(store, imageprocessor.NewProcessor(80, 256), 1<<20),
	)
	return svc, db
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestAccountService_Me(t *testing.T) {
	svc, db := newAccountService(t)
	companyUser, company := testutil.CreateCompany(t, db, 0)
	bare := testutil.CreateUser(t, db, models.UserRoleFreelancer)

	me, err := svc.Me(db, companyUser.ID)
	require.NoError(t, err)
	assert.Equal(t, companyUser.Email, me.User.Email)
	require.NotNil(t, me.Company)
	assert.Equal(t, company.ID, me.Company.ID)
	assert.Nil(t, me.Freelancer)

	me, err = svc.Me(db, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, me.Company)
	assert.Nil(t, me.Freelancer)
}

func TestAccountService_DeleteCompanyCascades(t *testing.T) {
	svc, db := newAccountService(t)
	companyUser, company := testutil.CreateCompany(t, db, 2)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	_, freelancer := testutil.CreateFreelancer(t, db)
	application := testutil.CreateApplication(t, db, freelancer, vacancy, models.ApplicationStatusAccepted)
	require.NoError(t, db.Create(&models.Rating{ApplicationID: application.ID, CompanyID: company.ID, FreelancerID: freelancer.ID, Score: 4}).Error)

	require.NoError(t, svc.DeleteAccount(context.Background(), db, companyUser.ID))

	assert.Zero(t, count(t, db, &models.User{}, "id = ?", companyUser.ID))
	assert.Zero(t, count(t, db, &models.Company{}, "id = ?", company.ID))
	assert.Zero(t, count(t, db, &models.Vacancy{}, "company_id = ?", company.ID))
	assert.Zero(t, count(t, db, &models.Application{}, "id = ?", application.ID))
	assert.Zero(t, count(t, db, &models.Rating{}, "company_id = ?", company.ID))
	assert.Zero(t, count(t, db, &models.TokenBalance{}, "company_id = ?", company.ID))
	assert.Equal(t, int64(1), count(t, db, &models.Freelancer{}, "id = ?", freelancer.ID), "the freelancer is untouched")
}

func TestAccountService_DeleteFreelancer(t *testing.T) {
	svc, db := newAccountService(t)
	_, company := testutil.CreateCompany(t, db, 0)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	freelancerUser, freelancer := testutil.CreateFreelancer(t, db)
	testutil.CreateApplication(t, db, freelancer, vacancy, models.ApplicationStatusPending)

	require.NoError(t, svc.DeleteAccount(context.Background(), db, freelancerUser.ID))

	assert.Zero(t, count(t, db, &models.Freelancer{}, "id = ?", freelancer.ID))
	assert.Zero(t, count(t, db, &models.Application{}, "freelancer_id = ?", freelancer.ID))
	assert.Equal(t, int64(1), count(t, db, &models.Vacancy{}, "id = ?", vacancy.ID))

	err := svc.DeleteAccount(context.Background(), db, freelancerUser.ID)
	requireAppError(t, err, http.StatusNotFound)
}
