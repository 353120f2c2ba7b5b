package models

import "time"

// OtpChallenge is the single live login challenge for an email address.
// Issuing a new challenge overwrites the previous one; verification,
// expiry and the third failed attempt all delete it. It is current-state
// only, never a log.
type OtpChallenge struct {
	Email     string    `gorm:"primaryKey" json:"email"`
	Code      string    `gorm:"not null" json:"-"` // hidden in JSON, never returned to callers
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	UserID    string    `gorm:"index" json:"user_id"`
}

// MaxOtpAttempts is terminal: the third wrong guess deletes the challenge.
const MaxOtpAttempts = 3

// OtpTTL is how long a challenge stays verifiable after issuance.
const OtpTTL = 10 * time.Minute
