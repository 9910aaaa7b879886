package course

import (
	"time"

	"gorm.io/gorm"
)

// Session is one unit of a course, ordered by Order. Resources hang off it
// per language.
type Session struct {
	gorm.Model
	CourseID    uint       `gorm:"index;not null" json:"course_id"`
	Title       string     `gorm:"not null" json:"title"`
	Order       int        `gorm:"not null" json:"order"`
	Description string     `gorm:"not null" json:"description"`
	Resources   []Resource `gorm:"foreignKey:SessionID" json:"resources,omitempty"`
}

// Resource types.
const (
	ResourceVideo = "video"
	ResourcePDF   = "pdf"
	ResourceLink  = "link"
)

// Resource is a single piece of session content in one language. Uploaded by
// a trainer, approved by the language's mentor or an admin. Rejection deletes
// the row outright.
type Resource struct {
	gorm.Model
	SessionID       uint       `gorm:"index;not null" json:"session_id"`
	Language        string     `gorm:"index;not null" json:"language"`
	Type            string     `gorm:"not null" json:"type"` // video, pdf, link
	Title           string     `gorm:"not null" json:"title"`
	URL             string     `gorm:"not null" json:"url"`
	FileName        string     `json:"file_name,omitempty"`
	FileSize        int64      `json:"file_size,omitempty"`
	MimeType        string     `json:"mime_type,omitempty"`
	DurationSeconds int        `gorm:"default:0" json:"duration_seconds"` // videos only
	UploadedAt      time.Time  `json:"uploaded_at"`
	UploadedBy      uint       `gorm:"not null" json:"uploaded_by"`
	Approved        bool       `gorm:"default:false" json:"approved"`
	ApprovedBy      *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
}
