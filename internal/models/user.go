package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered customer. Phone must be unique among active
// users; the hash never leaves the API.
type User struct {
	BaseModel
	Name         string `json:"name"`
	Phone        string `gorm:"index" json:"phone"`
	Email        string `gorm:"index" json:"email"`
	PasswordHash string `json:"-"`
	Address      string `json:"address"`
	ProfileImage string `json:"profile_image"`
	IsActive     bool   `json:"is_active"`
}

// PasswordResetCode is a short-lived one-time code proving email ownership.
// At most one active (unused, unexpired) code exists per email.
type PasswordResetCode struct {
	BaseModel
	Email        string     `gorm:"index" json:"email"`
	Code         string     `json:"code"`
	ExpiresAt    time.Time  `json:"expires_at"`
	UsedAt       *time.Time `json:"used_at"`
	IsUsed       bool       `json:"is_used"`
	AttemptCount int        `json:"attempt_count"`
}

// Card is a stored payment card. At most one card per user carries
// is_default = true; the hosted checkout handles real charging, so the card
// data here is display-only.
type Card struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CardNumber      string    `json:"card_number"`
	ExpiryDate      string    `json:"expiry_date"`
	HolderName      string    `json:"holder_name"`
	CVV             string    `json:"cvv"`
	BackgroundImage string    `json:"background_image"`
	IsDefault       bool      `json:"is_default"`
}
