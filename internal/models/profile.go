package models

type City struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

type Company struct {
	BaseModel
	UserID      string      `gorm:"type:varchar(36);uniqueIndex;not null"`
	CityID      uint        `gorm:"not null;index"`
	TaxID       string      `gorm:"type:varchar(30);uniqueIndex;not null"`
	Size        CompanySize `gorm:"type:varchar(20);not null"`
	Description string      `gorm:"type:text"`
	LogoPath    string      `gorm:"type:varchar(255)"`

	User *User `gorm:"foreignKey:UserID"`
	City *City `gorm:"foreignKey:CityID"`
}

type Freelancer struct {
	BaseModel
	UserID       string `gorm:"type:varchar(36);uniqueIndex;not null"`
	CityID       uint   `gorm:"not null;index"`
	Profession   string `gorm:"type:varchar(100);not null"`
	Experience   string `gorm:"type:text"`
	PortfolioURL string `gorm:"type:varchar(255)"`
	ResumePath   string `gorm:"type:varchar(255)"`
	AvatarPath   string `gorm:"type:varchar(255)"`

	User *User `gorm:"foreignKey:UserID"`
	City *City `gorm:"foreignKey:CityID"`
}
