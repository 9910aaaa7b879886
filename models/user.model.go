package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a learner account. Role moves user -> champion -> saathi; the last
// step only through the promotion workflow.
type User struct {
	gorm.Model
	Username       string `gorm:"unique;not null" json:"username"`
	Email          string `gorm:"unique;not null" json:"email"`
	Password       string `gorm:"not null" json:"-"`
	Role           Role   `gorm:"default:'user'" json:"role"`
	Language       string `json:"language"`
	ProfilePicture string `gorm:"default:''" json:"profile_picture"`
	IsDeleted      bool   `gorm:"default:false" json:"-"`
}

// Badge is a per-session completion credential. The unique index makes the
// award an insert-if-absent, so two concurrent completions cannot double-award.
type Badge struct {
	gorm.Model
	UserID    uint      `gorm:"uniqueIndex:idx_badge_user_session;not null" json:"user_id"`
	SessionID uint      `gorm:"uniqueIndex:idx_badge_user_session;not null" json:"session_id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
	Name      string    `json:"name"`
	EarnedOn  time.Time `json:"earned_on"`
}

// Certificate is a per-course completion credential, one per (user, course).
type Certificate struct {
	gorm.Model
	UserID        uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"user_id"`
	CourseID      uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"course_id"`
	CertificateID string    `gorm:"unique" json:"certificate_id"`
	IssueDate     time.Time `json:"issue_date"`
}

// TestScore holds a pre- or post-test result, one per (user, course, type).
type TestScore struct {
	gorm.Model
	UserID   uint      `gorm:"uniqueIndex:idx_score_user_course_type;not null" json:"user_id"`
	CourseID uint      `gorm:"uniqueIndex:idx_score_user_course_type;not null" json:"course_id"`
	Type     string    `gorm:"uniqueIndex:idx_score_user_course_type;not null" json:"type"` // pre, post
	Score    int       `json:"score"`
	TakenOn  time.Time `json:"taken_on"`
}

// PromotionRequest is a per-learner singleton. A new request overwrites the
// previous one, resolved or not; no history is kept.
type PromotionRequest struct {
	gorm.Model
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	RequestedAt   time.Time  `json:"requested_at"`
	CurrentRole   Role       `json:"current_role"`
	RequestedRole Role       `json:"requested_role"`
	Reason        string     `json:"reason"`
	Status        string     `gorm:"default:'pending'" json:"status"` // pending, approved, rejected
	ProcessedAt   *time.Time `json:"processed_at"`
	ProcessedBy   *uint      `json:"processed_by"`
	Feedback      string     `json:"feedback"`
}
