package models

import "gorm.io/gorm"

// Teacher is a teaching staff account: trainers upload session resources,
// mentors approve them.
type Teacher struct {
	gorm.Model
	Username  string `gorm:"unique;not null" json:"username"`
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      Role   `gorm:"not null" json:"role"` // trainer, mentor
	Language  string `gorm:"not null" json:"language"`
	Bio       string `json:"bio"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
