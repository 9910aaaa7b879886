package models

import "gorm.io/gorm"

// Message is a chat message, either personal (ReceiverID set) or group
// (GroupID set).
type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"index;not null" json:"sender_id"`
	ReceiverID *uint  `gorm:"index" json:"receiver_id"`
	GroupID    *uint  `gorm:"index" json:"group_id"`
	Content    string `gorm:"not null" json:"content"`
}
