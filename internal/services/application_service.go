package services

import (
	"context"
	"errors"
	"time"

	"freelink_backend/internal/email"
	"freelink_backend/internal/logger"
	"freelink_backend/internal/metrics"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const recentChangesWindow = 24 * time.Hour

type ApplicationService interface {
	// Freelancer side
	Submit(db *gorm.DB, userID, vacancyID string) (*dto.ApplicationResponse, error)
	ListMine(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error)
	Check(db *gorm.DB, userID, vacancyID string) (*dto.ApplicationCheckResponse, error)
	Cancel(db *gorm.DB, userID, applicationID string) error
	RecentChanges(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error)

	// Company side
	ListForCompany(db *gorm.DB, userID, vacancyID string) ([]*dto.ApplicationResponse, error)
	NewForCompany(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error)
	// Transition decides a pending application and notifies the freelancer after commit
	Transition(ctx context.Context, db *gorm.DB, userID, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
}

type ApplicationServiceImpl struct {
	profileRepo     repositories.ProfileRepository
	vacancyRepo     repositories.VacancyRepository
	applicationRepo repositories.ApplicationRepository
	notifier        email.Notifier
	now             func() time.Time
}

func NewApplicationService(
	profileRepo repositories.ProfileRepository,
	vacancyRepo repositories.VacancyRepository,
	applicationRepo repositories.ApplicationRepository,
	notifier email.Notifier,
) ApplicationService {
	return &ApplicationServiceImpl{
		profileRepo:     profileRepo,
		vacancyRepo:     vacancyRepo,
		applicationRepo: applicationRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

func (s *ApplicationServiceImpl) Submit(db *gorm.DB, userID, vacancyID string) (*dto.ApplicationResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	freelancer, err := loadFreelancer(tx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	vacancy, err := s.vacancyRepo.FindByID(tx, vacancyID)
	if err != nil {
		if errors.Is(err, repositories.ErrVacancyNotFound) {
			return nil, apperrors.ErrVacancyNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.applicationRepo.FindByPair(tx, freelancer.ID, vacancy.ID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !errors.Is(err, repositories.ErrApplicationMissing) {
		return nil, apperrors.InternalError(err)
	}
	if vacancy.Status != models.VacancyStatusOpen {
		return nil, apperrors.ErrVacancyClosed
	}

	application := &models.Application{
		FreelancerID: freelancer.ID,
		VacancyID:    vacancy.ID,
		Status:       models.ApplicationStatusPending,
		AppliedAt:    s.now(),
	}
	if err := s.applicationRepo.Create(tx, application); err != nil {
		if errors.Is(err, repositories.ErrApplicationExists) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	metrics.ApplicationTransitionsTotal.WithLabelValues(string(models.ApplicationStatusPending)).Inc()
	application.Vacancy = vacancy
	return dto.NewFreelancerApplicationResponse(application), nil
}

func (s *ApplicationServiceImpl) ListMine(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error) {
	freelancer, err := loadFreelancer(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.ListByFreelancer(db, freelancer.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapApplications(applications, dto.NewFreelancerApplicationResponse), nil
}

func (s *ApplicationServiceImpl) Check(db *gorm.DB, userID, vacancyID string) (*dto.ApplicationCheckResponse, error) {
	freelancer, err := loadFreelancer(db, s.profileRepo, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFreelancerProfileNotFound) {
			return &dto.ApplicationCheckResponse{Applied: false}, nil
		}
		return nil, err
	}

	application, err := s.applicationRepo.FindByPair(db, freelancer.ID, vacancyID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationMissing) {
			return &dto.ApplicationCheckResponse{Applied: false}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.ApplicationCheckResponse{
		Applied:       true,
		ApplicationID: application.ID,
		Status:        application.Status,
	}, nil
}

func (s *ApplicationServiceImpl) Cancel(db *gorm.DB, userID, applicationID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.findApplication(tx, applicationID)
	if err != nil {
		return err
	}

	freelancer, err := s.profileRepo.FindFreelancerByUserID(tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrFreelancerNotFound) {
			return apperrors.ErrNotApplicationOwner
		}
		return apperrors.InternalError(err)
	}
	if application.FreelancerID != freelancer.ID {
		return apperrors.ErrNotApplicationOwner
	}
	if application.Status != models.ApplicationStatusPending {
		return apperrors.ErrApplicationNotPending
	}

	if err := s.applicationRepo.Delete(tx, application.ID); err != nil {
		if errors.Is(err, repositories.ErrApplicationMissing) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return err
	}
	metrics.ApplicationTransitionsTotal.WithLabelValues("cancelled").Inc()
	return nil
}

func (s *ApplicationServiceImpl) RecentChanges(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error) {
	freelancer, err := s.profileRepo.FindFreelancerByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrFreelancerNotFound) {
			return []*dto.ApplicationResponse{}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	applications, err := s.applicationRepo.ListDecidedSince(db, freelancer.ID, s.now().Add(-recentChangesWindow))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapApplications(applications, dto.NewFreelancerApplicationResponse), nil
}

func (s *ApplicationServiceImpl) ListForCompany(db *gorm.DB, userID, vacancyID string) ([]*dto.ApplicationResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.ListByCompany(db, company.ID, vacancyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapApplications(applications, dto.NewCompanyApplicationResponse), nil
}

func (s *ApplicationServiceImpl) NewForCompany(db *gorm.DB, userID string) ([]*dto.ApplicationResponse, error) {
	company, err := s.profileRepo.FindCompanyByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewForbiddenError("A company profile is required")
		}
		return nil, apperrors.InternalError(err)
	}
	applications, err := s.applicationRepo.ListPendingByCompany(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapApplications(applications, dto.NewCompanyApplicationResponse), nil
}

func (s *ApplicationServiceImpl) Transition(ctx context.Context, db *gorm.DB, userID, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if !status.IsDecision() {
		return nil, apperrors.ErrInvalidApplicationStatus
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
	application, err := s.findApplication(tx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Vacancy == nil || application.Vacancy.CompanyID != company.ID {
		return nil, apperrors.ErrNotVacancyOwner
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, apperrors.ErrApplicationNotPending
	}

	decidedAt := s.now()
	decided, err := s.applicationRepo.Decide(tx, application.ID, status, decidedAt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !decided {
		return nil, apperrors.ErrApplicationNotPending
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	application.Status = status
	application.DecidedAt = &decidedAt
	metrics.ApplicationTransitionsTotal.WithLabelValues(string(status)).Inc()
	logger.CtxInfo(ctx, "Application decided", "application_id", application.ID, "status", status)

	s.notifyDecision(ctx, application)
	return dto.NewCompanyApplicationResponse(application), nil
}

func (s *ApplicationServiceImpl) notifyDecision(ctx context.Context, application *models.Application) {
	if application.Freelancer == nil || application.Freelancer.User == nil {
		return
	}
	user := application.Freelancer.User
	if err := s.notifier.SendApplicationStatusChanged(ctx, user.Email, user.Name, application.Vacancy.Title, string(application.Status)); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("application_status").Inc()
		logger.CtxWarn(ctx, "Failed to notify freelancer", "application_id", application.ID, "error", err)
	}
}

func (s *ApplicationServiceImpl) findApplication(db *gorm.DB, id string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationMissing) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func mapApplications(applications []models.Application, mapper func(*models.Application) *dto.ApplicationResponse) []*dto.ApplicationResponse {
	out := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, mapper(&applications[i]))
	}
	return out
}
