package models

import (
	"time"

	"gorm.io/gorm"
)

// Webinar statuses.
const (
	WebinarScheduled = "SCHEDULED"
	WebinarCompleted = "COMPLETED"
)

// Webinar is a scheduled live session backed by an RTC channel.
type Webinar struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Duration    int       `gorm:"default:60" json:"duration"` // minutes
	HostID      uint      `gorm:"index" json:"host_id"`
	HostRole    Role      `json:"host_role"`
	ChannelName string    `gorm:"unique;not null" json:"channel_name"`
	Token       string    `json:"token"`
	Status      string    `gorm:"default:'SCHEDULED'" json:"status"`
}
