package repositories

import (
	"freelink_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	// Cities
	ListCities(db *gorm.DB) ([]models.City, error)
	FindCity(db *gorm.DB, id uint) (*models.City, error)
	SeedCities(db *gorm.DB, names []string) error

	// Companies
	CreateCompany(db *gorm.DB, company *models.Company) error
	FindCompanyByUserID(db *gorm.DB, userID string) (*models.Company, error)
	FindCompanyByID(db *gorm.DB, id string) (*models.Company, error)
	TaxIDTaken(db *gorm.DB, taxID, exceptCompanyID string) (bool, error)
	UpdateCompany(db *gorm.DB, companyID string, fields map[string]interface{}) error
	DeleteCompany(db *gorm.DB, companyID string) error

	// Freelancers
	CreateFreelancer(db *gorm.DB, freelancer *models.Freelancer) error
	FindFreelancerByUserID(db *gorm.DB, userID string) (*models.Freelancer, error)
	FindFreelancerByID(db *gorm.DB, id string) (*models.Freelancer, error)
	UpdateFreelancer(db *gorm.DB, freelancerID string, fields map[string]interface{}) error
	DeleteFreelancer(db *gorm.DB, freelancerID string) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) ListCities(db *gorm.DB) ([]models.City, error) {
	var cities []models.City
	err := db.Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *profileRepository) FindCity(db *gorm.DB, id uint) (*models.City, error) {
	var city models.City
	if err := db.First(&city, id).Error; err != nil {
		return nil, notFound(err, ErrCityNotFound)
	}
	return &city, nil
}

// SeedCities inserts names that are not present yet.
func (r *profileRepository) SeedCities(db *gorm.DB, names []string) error {
	for _, name := range names {
		if err := db.Where(models.City{Name: name}).FirstOrCreate(&models.City{}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *profileRepository) CreateCompany(db *gorm.DB, company *models.Company) error {
	if err := db.Create(company).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) FindCompanyByUserID(db *gorm.DB, userID string) (*models.Company, error) {
	var company models.Company
	err := db.Preload("User").Preload("City").
		Where("user_id = ?", userID).
		First(&company).Error
	if err != nil {
		return nil, notFound(err, ErrCompanyNotFound)
	}
	return &company, nil
}

func (r *profileRepository) FindCompanyByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	err := db.Preload("User").Preload("City").
		Where("id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, notFound(err, ErrCompanyNotFound)
	}
	return &company, nil
}

func (r *profileRepository) TaxIDTaken(db *gorm.DB, taxID, exceptCompanyID string) (bool, error) {
	var count int64
	q := db.Model(&models.Company{}).Where("tax_id = ?", taxID)
	if exceptCompanyID != "" {
		q = q.Where("id <> ?", exceptCompanyID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) UpdateCompany(db *gorm.DB, companyID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&models.Company{}).Where("id = ?", companyID).Updates(fields).Error
}

func (r *profileRepository) DeleteCompany(db *gorm.DB, companyID string) error {
	return db.Where("id = ?", companyID).Delete(&models.Company{}).Error
}

func (r *profileRepository) CreateFreelancer(db *gorm.DB, freelancer *models.Freelancer) error {
	if err := db.Create(freelancer).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) FindFreelancerByUserID(db *gorm.DB, userID string) (*models.Freelancer, error) {
	var freelancer models.Freelancer
	err := db.Preload("User").Preload("City").
		Where("user_id = ?", userID).
		First(&freelancer).Error
	if err != nil {
		return nil, notFound(err, ErrFreelancerNotFound)
	}
	return &freelancer, nil
}

func (r *profileRepository) FindFreelancerByID(db *gorm.DB, id string) (*models.Freelancer, error) {
	var freelancer models.Freelancer
	err := db.Preload("User").Preload("City").
		Where("id = ?", id).
		First(&freelancer).Error
	if err != nil {
		return nil, notFound(err, ErrFreelancerNotFound)
	}
	return &freelancer, nil
}

func (r *profileRepository) UpdateFreelancer(db *gorm.DB, freelancerID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&models.Freelancer{}).Where("id = ?", freelancerID).Updates(fields).Error
}

func (r *profileRepository) DeleteFreelancer(db *gorm.DB, freelancerID string) error {
	return db.Where("id = ?", freelancerID).Delete(&models.Freelancer{}).Error
}
