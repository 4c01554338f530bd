package apperrors

import (
	"net/http"
)

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// NotFound builds a 404 with a domain specific message.
func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// --- Auth & accounts ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrInvalidResetToken is a client error: the caller supplied a bad reset token, not a bad session.
var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired reset token",
	http.StatusBadRequest,
)

var ErrUserInactive = New(
	CodeUnauthorized,
	"auth",
	"Your account is not active",
	http.StatusUnauthorized,
)

var ErrInvalidUserRole = New(
	CodeForbidden,
	"auth",
	"Invalid user role for this operation",
	http.StatusForbidden,
)

// --- Profiles ---

var ErrCompanyProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Company profile not found",
	http.StatusNotFound,
)

var ErrFreelancerProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Freelancer profile not found",
	http.StatusNotFound,
)

var ErrProfileAlreadyExists = New(
	CodeAlreadyExists,
	"profile",
	"Profile already exists",
	http.StatusConflict,
)

var ErrTaxIDAlreadyExists = New(
	CodeAlreadyExists,
	"profile",
	"Tax id already registered",
	http.StatusConflict,
)

var ErrCityNotFound = New(
	CodeNotFound,
	"city",
	"City not found",
	http.StatusNotFound,
)

// --- Uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrFileNotFound = New(
	CodeNotFound,
	"file",
	"File not found",
	http.StatusNotFound,
)

// --- Vacancies & applications ---

var ErrVacancyNotFound = New(
	CodeNotFound,
	"vacancy",
	"Vacancy not found",
	http.StatusNotFound,
)

var ErrVacancyClosed = New(
	CodeInvalidStatus,
	"vacancy",
	"Vacancy is not open for applications",
	http.StatusBadRequest,
)

var ErrNotVacancyOwner = New(
	CodeForbidden,
	"vacancy",
	"You do not own this vacancy",
	http.StatusForbidden,
)

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"You have already applied to this vacancy",
	http.StatusConflict,
)

var ErrInvalidApplicationStatus = New(
	CodeInvalidStatus,
	"application",
	"Status must be one of: accepted, rejected",
	http.StatusBadRequest,
)

var ErrApplicationNotPending = New(
	CodeInvalidStatus,
	"application",
	"Only pending applications can be changed",
	http.StatusBadRequest,
)

var ErrNotApplicationOwner = New(
	CodeForbidden,
	"application",
	"You do not own this application",
	http.StatusForbidden,
)

// --- Ratings ---

var ErrInvalidScore = New(
	CodeValidationFailed,
	"rating",
	"Score must be between 1 and 5",
	http.StatusBadRequest,
)

var ErrApplicationNotAccepted = New(
	CodeInvalidStatus,
	"rating",
	"Only accepted applications can be rated",
	http.StatusBadRequest,
)

var ErrAlreadyRated = New(
	CodeConflict,
	"rating",
	"This application has already been rated",
	http.StatusConflict,
)

// --- Tokens & payments ---

var ErrInsufficientTokens = NewPaymentRequiredError("Not enough tokens. At least 1 token is required to publish a vacancy.")

var ErrInvalidTokenAmount = New(
	CodeValidationFailed,
	"payment",
	"Token amount must be between 1 and 100",
	http.StatusBadRequest,
)

var ErrPaymentNotFound = New(
	CodeNotFound,
	"payment",
	"Payment not found",
	http.StatusNotFound,
)

var ErrPaymentNotSucceeded = New(
	CodeInvalidStatus,
	"payment",
	"Payment has not succeeded",
	http.StatusBadRequest,
)
