package models

type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name" gorm:"size:100;not null"`
	LastName    string `json:"last_name" gorm:"size:100;not null"`
	Email       string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Designation string `json:"designation" gorm:"size:150;not null"`
	DOB         string `json:"dob" gorm:"size:10;not null"`
	CompanyID   *uint  `json:"company_id"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	// Relations
	Company *Company `json:"-" gorm:"foreignKey:CompanyID"`
}
