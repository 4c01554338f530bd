package models

import "time"

type Vacancy struct {
	BaseModel
	CompanyID       string        `gorm:"type:varchar(36);not null;index"`
	Title           string        `gorm:"type:varchar(150);not null"`
	Description     string        `gorm:"type:text;not null"`
	Requirements    string        `gorm:"type:text;not null"`
	Salary          *float64      `gorm:"type:decimal(12,2)"`
	ProjectDuration string        `gorm:"type:varchar(100)"`
	PublishedAt     time.Time     `gorm:"not null"`
	Status          VacancyStatus `gorm:"type:varchar(20);not null;default:'open';index"`

	Company *Company `gorm:"foreignKey:CompanyID"`
}

// Application links a freelancer to a vacancy. A freelancer applies to a vacancy at most once.
type Application struct {
	BaseModel
	FreelancerID string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_pair"`
	VacancyID    string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_pair;index"`
	Status       ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AppliedAt    time.Time         `gorm:"not null"`
	DecidedAt    *time.Time

	Freelancer *Freelancer `gorm:"foreignKey:FreelancerID"`
	Vacancy    *Vacancy    `gorm:"foreignKey:VacancyID"`
}

// Rating is a company's score for a freelancer on an accepted application.
type Rating struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);uniqueIndex;not null"`
	CompanyID     string `gorm:"type:varchar(36);not null;index"`
	FreelancerID  string `gorm:"type:varchar(36);not null;index"`
	Score         int    `gorm:"not null"`
	Comment       string `gorm:"type:text"`
}
