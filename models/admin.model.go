package models

import "gorm.io/gorm"

// Admin is an administrator account; admins carry no sub-role.
type Admin struct {
	gorm.Model
	Username  string `gorm:"unique;not null" json:"username"`
	Email     string `gorm:"unique" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
