// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Default profile images assigned at signup when none is provided.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a user in the Warbler application.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"unique;not null" json:"username"`
	Email          string `gorm:"unique;not null" json:"email"`
	Password       string `gorm:"not null" json:"-"`
	Bio            string `json:"bio"`
	Location       string `gorm:"not null" json:"location"`
	ImageURL       string `json:"image_url"`
	HeaderImageURL string `json:"header_image_url"`
	// WarblesCount mirrors the number of the user's messages. It is only
	// adjusted atomically at the storage layer on confirmed create/delete.
	WarblesCount int       `gorm:"not null;default:0" json:"warbles_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Messages     []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}
