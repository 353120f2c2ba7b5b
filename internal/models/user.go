package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is a staff account record. Email is the lookup key for OTP login.
// Anything the admin app sends beyond the known columns is kept opaque
// in Profile.
type User struct {
	ID      string         `gorm:"primaryKey" json:"id"`
	Email   string         `gorm:"uniqueIndex;not null" json:"email"`
	Name    string         `json:"name,omitempty"`
	Role    string         `json:"role,omitempty"`
	Profile datatypes.JSON `json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
