package course

import "gorm.io/gorm"

// Course owns an ordered list of sessions and per-language staffing.
type Course struct {
	gorm.Model
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `json:"description"`
	LanguageStaff []LanguageStaff `gorm:"foreignKey:CourseID" json:"language_staff"`
	IsDeleted     bool            `gorm:"default:false" json:"-"`
}

// LanguageStaff names the trainer and mentor responsible for one language of
// a course. Both must exist with the matching teacher role.
type LanguageStaff struct {
	gorm.Model
	CourseID  uint   `gorm:"index;not null" json:"course_id"`
	Language  string `gorm:"not null" json:"language"`
	TrainerID uint   `gorm:"not null" json:"trainer_id"`
	MentorID  uint   `gorm:"not null" json:"mentor_id"`
}
