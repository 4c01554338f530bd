package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService        AuthService
	AccountService     AccountService
	ProfileService     ProfileService
	VacancyService     VacancyService
	ApplicationService ApplicationService
	RatingService      RatingService
	PaymentService     PaymentService
	UploadService      UploadService
}
