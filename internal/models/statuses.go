package models

type UserRole string
type UserStatus string
type CompanySize string
type VacancyStatus string
type ApplicationStatus string
type TransactionType string
type TransactionStatus string

const (
	UserRoleCompany    UserRole = "company"
	UserRoleFreelancer UserRole = "freelancer"

	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBlocked  UserStatus = "blocked"
	UserStatusDeleted  UserStatus = "deleted"

	CompanySizeSmall  CompanySize = "small"
	CompanySizeMedium CompanySize = "medium"
	CompanySizeLarge  CompanySize = "large"

	VacancyStatusOpen   VacancyStatus = "open"
	VacancyStatusClosed VacancyStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeUse      TransactionType = "use"
	TransactionTypeRefund   TransactionType = "refund"

	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCompany, UserRoleFreelancer:
		return true
	default:
		return false
	}
}

// CanLogin reports whether a user in this status may authenticate.
func (s UserStatus) CanLogin() bool {
	switch s {
	case UserStatusActive:
		return true
	case UserStatusInactive, UserStatusBlocked, UserStatusDeleted:
		return false
	default:
		return false
	}
}

func (s CompanySize) IsValid() bool {
	switch s {
	case CompanySizeSmall, CompanySizeMedium, CompanySizeLarge:
		return true
	default:
		return false
	}
}

func (s VacancyStatus) IsValid() bool {
	switch s {
	case VacancyStatusOpen, VacancyStatusClosed:
		return true
	default:
		return false
	}
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether s is a status a company may move a pending application to.
func (s ApplicationStatus) IsDecision() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	case ApplicationStatusPending:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether the application can no longer be cancelled or decided.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	case ApplicationStatusPending:
		return false
	default:
		return true
	}
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeUse, TransactionTypeRefund:
		return true
	default:
		return false
	}
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusRefunded:
		return true
	default:
		return false
	}
}
