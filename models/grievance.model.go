package models

import "gorm.io/gorm"

// Grievance statuses.
const (
	GrievanceOpen       = "open"
	GrievanceInProgress = "in-progress"
	GrievanceResolved   = "resolved"
)

// Grievance is a complaint filed by any authenticated user; admins update
// status and attach a response.
type Grievance struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Subject  string `gorm:"not null" json:"subject"`
	Message  string `gorm:"not null" json:"message"`
	Status   string `gorm:"default:'open'" json:"status"` // open, in-progress, resolved
	Response string `json:"response"`
}
