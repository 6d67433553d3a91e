package models

import (
	"time"
)

// MaxMessageLen is the maximum length of a warble's text.
const MaxMessageLen = 140

// Message is an individual short post ("warble").
type Message struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"size:140;not null" json:"text"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// OriginalMessageID is reserved for reposts/threads. Present in the
	// schema but not used by any operation yet.
	OriginalMessageID *uint `gorm:"index" json:"original_message_id,omitempty"`
	// LikesCount mirrors the number of like edges on this message. Adjusted
	// atomically at the storage layer on like and unlike.
	LikesCount int       `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked bool `gorm:"-" json:"liked"`
}
