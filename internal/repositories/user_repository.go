package repositories

import (
	"freelink_backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	Delete(db *gorm.DB, userID string) error

	// Password reset tokens
	CreateResetToken(db *gorm.DB, token *models.PasswordResetToken) error
	FindResetToken(db *gorm.DB, token string) (*models.PasswordResetToken, error)
	// ConsumeResetToken marks the token used only if it is still unused.
	ConsumeResetToken(db *gorm.DB, token string) (bool, error)
	InvalidateResetTokens(db *gorm.DB, email string) error
	DeleteResetTokens(db *gorm.DB, email string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(db *gorm.DB, userID string) error {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CreateResetToken(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *userRepository) FindResetToken(db *gorm.DB, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := db.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, notFound(err, ErrResetTokenNotFound)
	}
	return &t, nil
}

func (r *userRepository) ConsumeResetToken(db *gorm.DB, token string) (bool, error) {
	result := db.Model(&models.PasswordResetToken{}).
		Where("token = ? AND used = ?", token, false).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) InvalidateResetTokens(db *gorm.DB, email string) error {
	return db.Model(&models.PasswordResetToken{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true).Error
}

func (r *userRepository) DeleteResetTokens(db *gorm.DB, email string) error {
	return db.Where("email = ?", email).Delete(&models.PasswordResetToken{}).Error
}
