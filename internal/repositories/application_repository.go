package repositories

import (
	"time"

	"freelink_backend/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByPair(db *gorm.DB, freelancerID, vacancyID string) (*models.Application, error)
	ListByFreelancer(db *gorm.DB, freelancerID string) ([]models.Application, error)
	ListByCompany(db *gorm.DB, companyID, vacancyID string) ([]models.Application, error)
	ListPendingByCompany(db *gorm.DB, companyID string) ([]models.Application, error)
	ListAcceptedByCompany(db *gorm.DB, companyID string) ([]models.Application, error)
	ListDecidedSince(db *gorm.DB, freelancerID string, since time.Time) ([]models.Application, error)
	// Decide moves a pending application to status. It reports false when the application was no longer pending.
	Decide(db *gorm.DB, id string, status models.ApplicationStatus, at time.Time) (bool, error)
	Delete(db *gorm.DB, id string) error
	DeleteByVacancy(db *gorm.DB, vacancyID string) error
	DeleteByFreelancer(db *gorm.DB, freelancerID string) error
	DeleteByCompany(db *gorm.DB, companyID string) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, application *models.Application) error {
	if err := db.Create(application).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Vacancy").Preload("Freelancer.User").
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		return nil, notFound(err, ErrApplicationMissing)
	}
	return &application, nil
}

func (r *applicationRepository) FindByPair(db *gorm.DB, freelancerID, vacancyID string) (*models.Application, error) {
	var application models.Application
	err := db.Where("freelancer_id = ? AND vacancy_id = ?", freelancerID, vacancyID).
		First(&application).Error
	if err != nil {
		return nil, notFound(err, ErrApplicationMissing)
	}
	return &application, nil
}

func (r *applicationRepository) ListByFreelancer(db *gorm.DB, freelancerID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Preload("Vacancy.Company.User").
		Where("freelancer_id = ?", freelancerID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) companyScope(db *gorm.DB, companyID string) *gorm.DB {
	return db.Preload("Vacancy").Preload("Freelancer.User").
		Joins("JOIN vacancies ON vacancies.id = applications.vacancy_id").
		Where("vacancies.company_id = ?", companyID)
}

// ListByCompany lists applications on the company's vacancies, optionally narrowed to one vacancy.
func (r *applicationRepository) ListByCompany(db *gorm.DB, companyID, vacancyID string) ([]models.Application, error) {
	var applications []models.Application
	q := r.companyScope(db, companyID)
	if vacancyID != "" {
		q = q.Where("applications.vacancy_id = ?", vacancyID)
	}
	err := q.Order("applications.applied_at DESC").Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) ListPendingByCompany(db *gorm.DB, companyID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.companyScope(db, companyID).
		Where("applications.status = ?", models.ApplicationStatusPending).
		Order("applications.applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) ListAcceptedByCompany(db *gorm.DB, companyID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.companyScope(db, companyID).
		Where("applications.status = ?", models.ApplicationStatusAccepted).
		Order("applications.decided_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) ListDecidedSince(db *gorm.DB, freelancerID string, since time.Time) ([]models.Application, error) {
	var applications []models.Application
	err := db.Preload("Vacancy.Company.User").
		Where("freelancer_id = ? AND status IN ? AND decided_at >= ?", freelancerID,
			[]models.ApplicationStatus{models.ApplicationStatusAccepted, models.ApplicationStatusRejected}, since).
		Order("decided_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) Decide(db *gorm.DB, id string, status models.ApplicationStatus, at time.Time) (bool, error) {
	result := db.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *applicationRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationMissing
	}
	return nil
}

func (r *applicationRepository) DeleteByVacancy(db *gorm.DB, vacancyID string) error {
	return db.Where("vacancy_id = ?", vacancyID).Delete(&models.Application{}).Error
}

func (r *applicationRepository) DeleteByFreelancer(db *gorm.DB, freelancerID string) error {
	return db.Where("freelancer_id = ?", freelancerID).Delete(&models.Application{}).Error
}

func (r *applicationRepository) DeleteByCompany(db *gorm.DB, companyID string) error {
	vacancies := db.Model(&models.Vacancy{}).Select("id").Where("company_id = ?", companyID)
	return db.Where("vacancy_id IN (?)", vacancies).Delete(&models.Application{}).Error
}
