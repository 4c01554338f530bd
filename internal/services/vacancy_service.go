package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"freelink_backend/internal/logger"
	"freelink_backend/internal/metrics"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type VacancyService interface {
	List(db *gorm.DB, status models.VacancyStatus) ([]*dto.VacancyResponse, error)
	Get(db *gorm.DB, id string) (*dto.VacancyResponse, error)
	// Create spends one token of the caller's company; see PaymentRepository.DebitToken
	Create(db *gorm.DB, userID string, req *dto.CreateVacancyRequest) (*dto.CreateVacancyResponse, error)
	ListMine(db *gorm.DB, userID string) ([]*dto.VacancyResponse, error)
	Update(db *gorm.DB, userID, id string, req *dto.UpdateVacancyRequest) (*dto.VacancyResponse, error)
	Delete(db *gorm.DB, userID, id string) error
}

type VacancyServiceImpl struct {
	profileRepo     repositories.ProfileRepository
	vacancyRepo     repositories.VacancyRepository
	applicationRepo repositories.ApplicationRepository
	ratingRepo      repositories.RatingRepository
	paymentRepo     repositories.PaymentRepository
	now             func() time.Time
}

func NewVacancyService(
	profileRepo repositories.ProfileRepository,
	vacancyRepo repositories.VacancyRepository,
	applicationRepo repositories.ApplicationRepository,
	ratingRepo repositories.RatingRepository,
	paymentRepo repositories.PaymentRepository,
) VacancyService {
	return &VacancyServiceImpl{
		profileRepo:     profileRepo,
		vacancyRepo:     vacancyRepo,
		applicationRepo: applicationRepo,
		ratingRepo:      ratingRepo,
		paymentRepo:     paymentRepo,
		now:             time.Now,
	}
}

func (s *VacancyServiceImpl) List(db *gorm.DB, status models.VacancyStatus) ([]*dto.VacancyResponse, error) {
	if status == "" {
		status = models.VacancyStatusOpen
	}
	if !status.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"status": "Must be one of: open, closed"})
	}

	vacancies, err := s.vacancyRepo.List(db, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.VacancyResponse, 0, len(vacancies))
	for i := range vacancies {
		out = append(out, dto.NewVacancyResponse(&vacancies[i]))
	}
	return out, nil
}

func (s *VacancyServiceImpl) Get(db *gorm.DB, id string) (*dto.VacancyResponse, error) {
	vacancy, err := s.findVacancy(db, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVacancyResponse(vacancy), nil
}

func (s *VacancyServiceImpl) findVacancy(db *gorm.DB, id string) (*models.Vacancy, error) {
	vacancy, err := s.vacancyRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVacancyNotFound) {
			return nil, apperrors.ErrVacancyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return vacancy, nil
}

func (s *VacancyServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateVacancyRequest) (*dto.CreateVacancyResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	company, err := loadCompany(tx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	debited, err := s.paymentRepo.DebitToken(tx, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !debited {
		available := 0
		if balance, err := s.paymentRepo.FindBalance(tx, company.ID); err == nil {
			available = balance.Available
		} else if !errors.Is(err, repositories.ErrBalanceNotFound) {
			return nil, apperrors.InternalError(err)
		}
		metrics.VacancyRejectedNoTokensTotal.Inc()
		return nil, apperrors.ErrInsufficientTokens.WithDetails(map[string]interface{}{
			"tokens_disponibles": available,
			"available_tokens":   available,
		})
	}

	title := strings.TrimSpace(req.Title)
	if err := s.paymentRepo.CreateTransaction(tx, &models.Transaction{
		CompanyID:   company.ID,
		Type:        models.TransactionTypeUse,
		Tokens:      1,
		Status:      models.TransactionStatusCompleted,
		Description: truncate("Vacancy published: "+title, 255),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	vacancy := &models.Vacancy{
		CompanyID:       company.ID,
		Title:           title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          req.Salary,
		ProjectDuration: req.ProjectDuration,
		PublishedAt:     s.now(),
		Status:          models.VacancyStatusOpen,
	}
	if err := s.vacancyRepo.Create(tx, vacancy); err != nil {
		return nil, apperrors.InternalError(err)
	}

	balance, err := s.paymentRepo.FindBalance(tx, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	metrics.VacanciesCreatedTotal.Inc()
	logger.With("vacancy_id", vacancy.ID, "company_id", company.ID).Info("Vacancy published", "remaining_tokens", balance.Available)

	vacancy.Company = company
	return &dto.CreateVacancyResponse{
		Vacancy:         dto.NewVacancyResponse(vacancy),
		RemainingTokens: balance.Available,
	}, nil
}

func (s *VacancyServiceImpl) ListMine(db *gorm.DB, userID string) ([]*dto.VacancyResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	vacancies, err := s.vacancyRepo.ListByCompany(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(vacancies))
	for _, v := range vacancies {
		ids = append(ids, v.ID)
	}
	counts, err := s.vacancyRepo.CountApplications(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.VacancyResponse, 0, len(vacancies))
	for i := range vacancies {
		vacancies[i].Company = company
		resp := dto.NewVacancyResponse(&vacancies[i])
		count := counts[vacancies[i].ID]
		resp.ApplicationsCount = &count
		out = append(out, resp)
	}
	return out, nil
}

// ownedVacancy loads the vacancy and checks it belongs to the caller's company
func (s *VacancyServiceImpl) ownedVacancy(db *gorm.DB, userID, id string) (*models.Vacancy, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	vacancy, err := s.findVacancy(db, id)
	if err != nil {
		return nil, err
	}
	if vacancy.CompanyID != company.ID {
		return nil, apperrors.ErrNotVacancyOwner
	}
	return vacancy, nil
}

func (s *VacancyServiceImpl) Update(db *gorm.DB, userID, id string, req *dto.UpdateVacancyRequest) (*dto.VacancyResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.ownedVacancy(tx, userID, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Requirements != nil {
		fields["requirements"] = *req.Requirements
	}
	if req.Salary != nil {
		fields["salary"] = *req.Salary
	}
	if req.ProjectDuration != nil {
		fields["project_duration"] = *req.ProjectDuration
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ValidationError(map[string]string{"status": "Must be one of: open, closed"})
		}
		fields["status"] = *req.Status
	}

	if err := s.vacancyRepo.Update(tx, id, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	updated, err := s.findVacancy(tx, id)
	if err != nil {
		return nil, err
	}
	if err := commit(tx); err != nil {
		return nil, err
	}
	return dto.NewVacancyResponse(updated), nil
}

// Delete removes the vacancy with its applications and ratings. The spent token is not refunded.
func (s *VacancyServiceImpl) Delete(db *gorm.DB, userID, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.ownedVacancy(tx, userID, id); err != nil {
		return err
	}

	if err := s.ratingRepo.DeleteByVacancy(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.applicationRepo.DeleteByVacancy(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.vacancyRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	return commit(tx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
