package services

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVacancyService(t *testing.T) (VacancyService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := NewVacancyService(
		repositories.NewProfileRepository(),
		repositories.NewVacancyRepository(),
		repositories.NewApplicationRepository(),
		repositories.NewRatingRepository(),
		repositories.NewPaymentRepository(),
	)
	return svc, db
}

func vacancyRequest(title string) *dto.CreateVacancyRequest {
	salary := 2500000.0
	return &dto.CreateVacancyRequest{
		Title:           title,
		Description:     "Maintain the payments service",
		Requirements:    "Go, SQL",
		Salary:          &salary,
		ProjectDuration: "3 months",
	}
}

func TestVacancyService_CreateSpendsOneToken(t *testing.T) {
	svc, db := newVacancyService(t)
	user, company := testutil.CreateCompany(t, db, 2)

	// 1. Act
	resp, err := svc.Create(db, user.ID, vacancyRequest("  Go developer "))

	// 2. Assert
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RemainingTokens)
	assert.Equal(t, "Go developer", resp.Vacancy.Title)
	assert.Equal(t, models.VacancyStatusOpen, resp.Vacancy.Status)

	balance := testutil.Balance(t, db, company.ID)
	assert.Equal(t, 1, balance.Available)
	assert.Equal(t, 1, balance.Used)

	var ledger []models.Transaction
	require.NoError(t, db.Where("company_id = ?", company.ID).Find(&ledger).Error)
	require.Len(t, ledger, 1)
	assert.Equal(t, models.TransactionTypeUse, ledger[0].Type)
	assert.Equal(t, 1, ledger[0].Tokens)
	assert.Equal(t, models.TransactionStatusCompleted, ledger[0].Status)
}

func TestVacancyService_CreateKeepsLedgerDescriptionValidUTF8(t *testing.T) {
	svc, db := newVacancyService(t)
	user, company := testutil.CreateCompany(t, db, 1)
	title := "a" + strings.Repeat("é", 149)

	resp, err := svc.Create(db, user.ID, vacancyRequest(title))
	require.NoError(t, err)
	assert.Equal(t, title, resp.Vacancy.Title)

	var ledger models.Transaction
	require.NoError(t, db.Where("company_id = ?", company.ID).First(&ledger).Error)
	assert.True(t, utf8.ValidString(ledger.Description), "description was cut inside a rune")
	assert.LessOrEqual(t, len(ledger.Description), 255)
	assert.True(t, strings.HasPrefix(ledger.Description, "Vacancy published: a"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "aé", truncate("aé", 3))
}

func TestVacancyService_CreateWithoutTokens(t *testing.T) {
	svc, db := newVacancyService(t)
	user, company := testutil.CreateCompany(t, db, 1)

	_, err := svc.Create(db, user.ID, vacancyRequest("First"))
	require.NoError(t, err)

	_, err = svc.Create(db, user.ID, vacancyRequest("Second"))
	appErr := requireAppError(t, err, http.StatusPaymentRequired)
	assert.Equal(t, map[string]interface{}{"tokens_disponibles": 0, "available_tokens": 0}, appErr.Details)

	var count int64
	require.NoError(t, db.Model(&models.Vacancy{}).Where("company_id = ?", company.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "a rejected publish must not leave a vacancy behind")

	balance := testutil.Balance(t, db, company.ID)
	assert.Equal(t, 0, balance.Available)
	assert.Equal(t, 1, balance.Used)
}

func TestVacancyService_CreateRequiresCompanyProfile(t *testing.T) {
	svc, db := newVacancyService(t)
	user := testutil.CreateUser(t, db, models.UserRoleCompany)

	_, err := svc.Create(db, user.ID, vacancyRequest("No profile"))
	requireAppError(t, err, http.StatusNotFound)
}

func TestVacancyService_ConcurrentCreateNeverOverspends(t *testing.T) {
	svc, db := newVacancyService(t)
	user, company := testutil.CreateCompany(t, db, 3)

	const attempts = 6
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(db, user.ID, vacancyRequest("Concurrent"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.LessOrEqual(t, succeeded, 3)

	balance := testutil.Balance(t, db, company.ID)
	assert.GreaterOrEqual(t, balance.Available, 0)
	assert.Equal(t, 3, balance.Available+balance.Used)

	var count int64
	require.NoError(t, db.Model(&models.Vacancy{}).Where("company_id = ?", company.ID).Count(&count).Error)
	assert.Equal(t, int64(succeeded), count)
	assert.Equal(t, succeeded, balance.Used)
}

func TestVacancyService_ListAndGet(t *testing.T) {
	svc, db := newVacancyService(t)
	_, company := testutil.CreateCompany(t, db, 0)
	open := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	closed := testutil.CreateVacancy(t, db, company, models.VacancyStatusClosed)

	list, err := svc.List(db, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)

	list, err = svc.List(db, models.VacancyStatusClosed)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, closed.ID, list[0].ID)

	_, err = svc.List(db, "archived")
	requireAppError(t, err, http.StatusBadRequest)

	got, err := svc.Get(db, open.ID)
	require.NoError(t, err)
	assert.Equal(t, open.Title, got.Title)

	_, err = svc.Get(db, "missing")
	requireAppError(t, err, http.StatusNotFound)
}

func TestVacancyService_ListMineCountsApplications(t *testing.T) {
	svc, db := newVacancyService(t)
	user, company := testutil.CreateCompany(t, db, 0)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	testutil.CreateVacancy(t, db, company, models.VacancyStatusClosed)

	_, f1 := testutil.CreateFreelancer(t, db)
	_, f2 := testutil.CreateFreelancer(t, db)
	testutil.CreateApplication(t, db, f1, vacancy, models.ApplicationStatusPending)
	testutil.CreateApplication(t, db, f2, vacancy, models.ApplicationStatusRejected)

	mine, err := svc.ListMine(db, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	counts := map[string]int64{}
	for _, v := range mine {
		require.NotNil(t, v.ApplicationsCount)
		counts[v.ID] = *v.ApplicationsCount
	}
	assert.Equal(t, int64(2), counts[vacancy.ID])
}

func TestVacancyService_UpdateAndDeleteOwnership(t *testing.T) {
	svc, db := newVacancyService(t)
	owner, company := testutil.CreateCompany(t, db, 0)
	stranger, _ := testutil.CreateCompany(t, db, 0)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)

	closed := models.VacancyStatusClosed
	title := "Senior Go developer"

	_, err := svc.Update(db, stranger.ID, vacancy.ID, &dto.UpdateVacancyRequest{Status: &closed})
	requireAppError(t, err, http.StatusForbidden)

	updated, err := svc.Update(db, owner.ID, vacancy.ID, &dto.UpdateVacancyRequest{Title: &title, Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, models.VacancyStatusClosed, updated.Status)

	err = svc.Delete(db, stranger.ID, vacancy.ID)
	requireAppError(t, err, http.StatusForbidden)

	err = svc.Delete(db, owner.ID, "missing")
	requireAppError(t, err, http.StatusNotFound)
}

func TestVacancyService_DeleteCascadesWithoutRefund(t *testing.T) {
	svc, db := newVacancyService(t)
	owner, company := testutil.CreateCompany(t, db, 1)

	created, err := svc.Create(db, owner.ID, vacancyRequest("Short lived"))
	require.NoError(t, err)

	var vacancy models.Vacancy
	require.NoError(t, db.First(&vacancy, "id = ?", created.Vacancy.ID).Error)
	_, freelancer := testutil.CreateFreelancer(t, db)
	application := testutil.CreateApplication(t, db, freelancer, &vacancy, models.ApplicationStatusAccepted)
	require.NoError(t, db.Create(&models.Rating{
		ApplicationID: application.ID,
		CompanyID:     company.ID,
		FreelancerID:  freelancer.ID,
		Score:         5,
	}).Error)

	require.NoError(t, svc.Delete(db, owner.ID, vacancy.ID))

	var applications, ratings int64
	require.NoError(t, db.Model(&models.Application{}).Where("vacancy_id = ?", vacancy.ID).Count(&applications).Error)
	require.NoError(t, db.Model(&models.Rating{}).Where("application_id = ?", application.ID).Count(&ratings).Error)
	assert.Zero(t, applications)
	assert.Zero(t, ratings)

	balance := testutil.Balance(t, db, company.ID)
	assert.Equal(t, 0, balance.Available)
}
