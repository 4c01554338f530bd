package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApplicationService(t *testing.T) (*ApplicationServiceImpl, *gorm.DB, *testutil.FakeNotifier) {
	t.Helper()
	db := testutil.NewTestDB(t)
	notifier := &testutil.FakeNotifier{}
	svc := NewApplicationService(
		repositories.NewProfileRepository(),
		repositories.NewVacancyRepository(),
		repositories.NewApplicationRepository(),
		notifier,
	).(*ApplicationServiceImpl)
	return svc, db, notifier
}

func TestApplicationService_SubmitDuplicateAfterClose(t *testing.T) {
	svc, db, _ := newApplicationService(t)
	_, company := testutil.CreateCompany(t, db, 0)
	freelancerUser, _ := testutil.CreateFreelancer(t, db)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)

	_, err := svc.Submit(db, freelancerUser.ID, vacancy.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Vacancy{}).Where("id = ?", vacancy.ID).
		Update("status", models.VacancyStatusClosed).Error)

	_, err = svc.Submit(db, freelancerUser.ID, vacancy.ID)
	requireAppError(t, err, http.StatusConflict)
}

func TestApplicationService_Submit(t *testing.T) {
	svc, db, _ := newApplicationService(t)
	_, company := testutil.CreateCompany(t, db, 0)
	freelancerUser, _ := testutil.CreateFreelancer(t, db)
	open := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	closed := testutil.CreateVacancy(t, db, company, models.VacancyStatusClosed)

	application, err := svc.Submit(db, freelancerUser.ID, open.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, open.Title, application.VacancyTitle)

	t.Run("second application to the same vacancy", func(t *testing.T) {
		_, err := svc.Submit(db, freelancerUser.ID, open.ID)
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("closed vacancy", func(t *testing.T) {
		_, err := svc.Submit(db, freelancerUser.ID, closed.ID)
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("unknown vacancy", func(t *testing.T) {
		_, err := svc.Submit(db, freelancerUser.ID, "missing")
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("user without a freelancer profile", func(t *testing.T) {
		bare := testutil.CreateUser(t, db, models.UserRoleFreelancer)
		_, err := svc.Submit(db, bare.ID, open.ID)
		requireAppError(t, err, http.StatusNotFound)
	})

	check, err := svc.Check(db, freelancerUser.ID, open.ID)
	require.NoError(t, err)
	assert.True(t, check.Applied)
	assert.Equal(t, application.ID, check.ApplicationID)

	check, err = svc.Check(db, freelancerUser.ID, closed.ID)
	require.NoError(t, err)
	assert.False(t, check.Applied)

	mine, err := svc.ListMine(db, freelancerUser.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, application.ID, mine[0].ID)
}

func TestApplicationService_Cancel(t *testing.T) {
	svc, db, _ := newApplicationService(t)
	_, company := testutil.CreateCompany(t, db, 0)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	ownerUser, owner := testutil.CreateFreelancer(t, db)
	otherUser, other := testutil.CreateFreelancer(t, db)

	pending := testutil.CreateApplication(t, db, owner, vacancy, models.ApplicationStatusPending)
	decided := testutil.CreateApplication(t, db, other, vacancy, models.ApplicationStatusAccepted)

	err := svc.Cancel(db, otherUser.ID, pending.ID)
	requireAppError(t, err, http.StatusForbidden)

	err = svc.Cancel(db, otherUser.ID, decided.ID)
	requireAppError(t, err, http.StatusBadRequest)

	require.NoError(t, svc.Cancel(db, ownerUser.ID, pending.ID))

	err = svc.Cancel(db, ownerUser.ID, pending.ID)
	requireAppError(t, err, http.StatusNotFound)

	// After cancelling the freelancer may apply again
	_, err = svc.Submit(db, ownerUser.ID, vacancy.ID)
	require.NoError(t, err)
}

func TestApplicationService_Transition(t *testing.T) {
	svc, db, notifier := newApplicationService(t)
	ctx := context.Background()
	companyUser, company := testutil.CreateCompany(t, db, 0)
	strangerUser, _ := testutil.CreateCompany(t, db, 0)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	freelancerUser, freelancer := testutil.CreateFreelancer(t, db)
	application := testutil.CreateApplication(t, db, freelancer, vacancy, models.ApplicationStatusPending)

	now, _ := fixedClock(time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC))
	svc.now = now

	_, err := svc.Transition(ctx, db, strangerUser.ID, application.ID, models.ApplicationStatusAccepted)
	requireAppError(t, err, http.StatusForbidden)

	_, err = svc.Transition(ctx, db, companyUser.ID, application.ID, models.ApplicationStatusPending)
	requireAppError(t, err, http.StatusBadRequest)

	_, err = svc.Transition(ctx, db, companyUser.ID, application.ID, "hired")
	requireAppError(t, err, http.StatusBadRequest)
	assert.Empty(t, notifier.Sent())

	resp, err := svc.Transition(ctx, db, companyUser.ID, application.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, resp.Status)
	require.NotNil(t, resp.DecidedAt)
	assert.True(t, resp.DecidedAt.Equal(now()))
	assert.Equal(t, freelancerUser.Email, resp.FreelancerEmail)

	sent, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "application_status", sent.Kind)
	assert.Equal(t, freelancerUser.Email, sent.To)
	assert.Equal(t, vacancy.Title, sent.Title)
	assert.Equal(t, string(models.ApplicationStatusAccepted), sent.Status)

	// A decided application stays decided
	_, err = svc.Transition(ctx, db, companyUser.ID, application.ID, models.ApplicationStatusRejected)
	requireAppError(t, err, http.StatusBadRequest)
	assert.Len(t, notifier.Sent(), 1)

	var stored models.Application
	require.NoError(t, db.First(&stored, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)
}

func TestApplicationService_TransitionSurvivesNotifierFailure(t *testing.T) {
	svc, db, notifier := newApplicationService(t)
	notifier.Err = assert.AnError
	companyUser, company := testutil.CreateCompany(t, db, 0)
	vacancy := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	_, freelancer := testutil.CreateFreelancer(t, db)
	application := testutil.CreateApplication(t, db, freelancer, vacancy, models.ApplicationStatusPending)

	resp, err := svc.Transition(context.Background(), db, companyUser.ID, application.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, resp.Status)
	assert.Len(t, notifier.Sent(), 1)
}

func TestApplicationService_CompanyListings(t *testing.T) {
	svc, db, _ := newApplicationService(t)
	ctx := context.Background()
	companyUser, company := testutil.CreateCompany(t, db, 0)
	_, otherCompany := testutil.CreateCompany(t, db, 0)
	first := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	second := testutil.CreateVacancy(t, db, company, models.VacancyStatusOpen)
	foreign := testutil.CreateVacancy(t, db, otherCompany, models.VacancyStatusOpen)

	freelancerUser, freelancer := testutil.CreateFreelancer(t, db)
	a1 := testutil.CreateApplication(t, db, freelancer, first, models.ApplicationStatusPending)
	testutil.CreateApplication(t, db, freelancer, second, models.ApplicationStatusPending)
	testutil.CreateApplication(t, db, freelancer, foreign, models.ApplicationStatusPending)

	all, err := svc.ListForCompany(db, companyUser.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListForCompany(db, companyUser.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, a1.ID, filtered[0].ID)
	assert.Equal(t, freelancerUser.ID, filtered[0].FreelancerUserID)

	_, err = svc.Transition(ctx, db, companyUser.ID, a1.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)

	pending, err := svc.NewForCompany(db, companyUser.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.NotEqual(t, a1.ID, pending[0].ID)

	recent, err := svc.RecentChanges(db, freelancerUser.ID)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, a1.ID, recent[0].ID)
}
