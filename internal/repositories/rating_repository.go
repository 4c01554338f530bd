package repositories

import (
	"freelink_backend/internal/models"

	"gorm.io/gorm"
)

type RatingSummary struct {
	Average float64
	Total   int64
}

type RatingRepository interface {
	Create(db *gorm.DB, rating *models.Rating) error
	FindByApplication(db *gorm.DB, applicationID string) (*models.Rating, error)
	FindByApplications(db *gorm.DB, applicationIDs []string) (map[string]models.Rating, error)
	ListByFreelancer(db *gorm.DB, freelancerID string) ([]models.Rating, error)
	Summary(db *gorm.DB, freelancerID string) (*RatingSummary, error)
	DeleteByVacancy(db *gorm.DB, vacancyID string) error
	DeleteByCompany(db *gorm.DB, companyID string) error
	DeleteByFreelancer(db *gorm.DB, freelancerID string) error
}

type ratingRepository struct{}

func NewRatingRepository() RatingRepository {
	return &ratingRepository{}
}

func (r *ratingRepository) Create(db *gorm.DB, rating *models.Rating) error {
	if err := db.Create(rating).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrRatingExists
		}
		return err
	}
	return nil
}

func (r *ratingRepository) FindByApplication(db *gorm.DB, applicationID string) (*models.Rating, error) {
	var rating models.Rating
	if err := db.Where("application_id = ?", applicationID).First(&rating).Error; err != nil {
		return nil, notFound(err, ErrRatingNotFound)
	}
	return &rating, nil
}

func (r *ratingRepository) FindByApplications(db *gorm.DB, applicationIDs []string) (map[string]models.Rating, error) {
	result := make(map[string]models.Rating, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return result, nil
	}
	var ratings []models.Rating
	if err := db.Where("application_id IN ?", applicationIDs).Find(&ratings).Error; err != nil {
		return nil, err
	}
	for _, rating := range ratings {
		result[rating.ApplicationID] = rating
	}
	return result, nil
}

func (r *ratingRepository) ListByFreelancer(db *gorm.DB, freelancerID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) Summary(db *gorm.DB, freelancerID string) (*RatingSummary, error) {
	var summary RatingSummary
	err := db.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS total").
		Where("freelancer_id = ?", freelancerID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *ratingRepository) DeleteByVacancy(db *gorm.DB, vacancyID string) error {
	applications := db.Model(&models.Application{}).Select("id").Where("vacancy_id = ?", vacancyID)
	return db.Where("application_id IN (?)", applications).Delete(&models.Rating{}).Error
}

func (r *ratingRepository) DeleteByCompany(db *gorm.DB, companyID string) error {
	return db.Where("company_id = ?", companyID).Delete(&models.Rating{}).Error
}

func (r *ratingRepository) DeleteByFreelancer(db *gorm.DB, freelancerID string) error {
	return db.Where("freelancer_id = ?", freelancerID).Delete(&models.Rating{}).Error
}
