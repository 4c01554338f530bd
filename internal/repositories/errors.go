package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrResetTokenNotFound = errors.New("password reset token not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrFreelancerNotFound = errors.New("freelancer not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrVacancyNotFound    = errors.New("vacancy not found")
	ErrApplicationExists  = errors.New("application already exists")
	ErrApplicationMissing = errors.New("application not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrRatingExists       = errors.New("rating already exists")
	ErrBalanceNotFound    = errors.New("token balance not found")
	ErrTransactionMissing = errors.New("transaction not found")
	ErrEventAlreadySeen   = errors.New("payment event already processed")
)

// isDuplicateKey recognises unique violations across postgres, mysql and sqlite,
// with or without gorm's TranslateError.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// notFound maps gorm's miss to the repository's sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
