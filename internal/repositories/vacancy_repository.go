package repositories

import (
	"freelink_backend/internal/models"

	"gorm.io/gorm"
)

type VacancyRepository interface {
	Create(db *gorm.DB, vacancy *models.Vacancy) error
	FindByID(db *gorm.DB, id string) (*models.Vacancy, error)
	List(db *gorm.DB, status models.VacancyStatus) ([]models.Vacancy, error)
	ListByCompany(db *gorm.DB, companyID string) ([]models.Vacancy, error)
	CountApplications(db *gorm.DB, vacancyIDs []string) (map[string]int64, error)
	Update(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	DeleteByCompany(db *gorm.DB, companyID string) error
}

type vacancyRepository struct{}

func NewVacancyRepository() VacancyRepository {
	return &vacancyRepository{}
}

func (r *vacancyRepository) Create(db *gorm.DB, vacancy *models.Vacancy) error {
	return db.Create(vacancy).Error
}

func (r *vacancyRepository) FindByID(db *gorm.DB, id string) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := db.Preload("Company.User").Preload("Company.City").
		Where("id = ?", id).
		First(&vacancy).Error
	if err != nil {
		return nil, notFound(err, ErrVacancyNotFound)
	}
	return &vacancy, nil
}

func (r *vacancyRepository) List(db *gorm.DB, status models.VacancyStatus) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := db.Preload("Company.User").Preload("Company.City").
		Where("status = ?", status).
		Order("published_at DESC").
		Find(&vacancies).Error
	return vacancies, err
}

func (r *vacancyRepository) ListByCompany(db *gorm.DB, companyID string) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := db.Where("company_id = ?", companyID).
		Order("published_at DESC").
		Find(&vacancies).Error
	return vacancies, err
}

// CountApplications returns the number of applications per vacancy id. Ids without applications are absent.
func (r *vacancyRepository) CountApplications(db *gorm.DB, vacancyIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(vacancyIDs))
	if len(vacancyIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		VacancyID string
		Total     int64
	}
	err := db.Model(&models.Application{}).
		Select("vacancy_id, COUNT(*) AS total").
		Where("vacancy_id IN ?", vacancyIDs).
		Group("vacancy_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.VacancyID] = row.Total
	}
	return counts, nil
}

func (r *vacancyRepository) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&models.Vacancy{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVacancyNotFound
	}
	return nil
}

func (r *vacancyRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Vacancy{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVacancyNotFound
	}
	return nil
}

func (r *vacancyRepository) DeleteByCompany(db *gorm.DB, companyID string) error {
	return db.Where("company_id = ?", companyID).Delete(&models.Vacancy{}).Error
}
