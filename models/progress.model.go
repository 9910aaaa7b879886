package models

import (
	"time"

	"gorm.io/gorm"
)

// Progress records session completion for one learner. Upserted on each
// completion attempt, never deleted.
type Progress struct {
	gorm.Model
	UserID        uint       `gorm:"uniqueIndex:idx_progress_user_session;not null" json:"user_id"`
	SessionID     uint       `gorm:"uniqueIndex:idx_progress_user_session;not null" json:"session_id"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedOn   *time.Time `json:"completed_on"`
	VideoID       string     `json:"video_id"`
	VideoWatched  bool       `gorm:"default:false" json:"video_watched"`
	WatchDuration int        `gorm:"default:0" json:"watch_duration"` // seconds
	WatchedOn     *time.Time `json:"watched_on"`
}
