package storage

import (
	"errors"
	"time"

	"github.com/miamibeach-ops/hk-backend/internal/models"
)

// ErrNotFound is returned by every lookup that misses, regardless of backend.
var ErrNotFound = errors.New("record not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id string) error

	// OTP challenge operations
	UpsertOtpChallenge(ch *models.OtpChallenge) error
	GetOtpChallenge(email string) (*models.OtpChallenge, error)
	// IncrementOtpAttempts bumps the attempt counter atomically and returns
	// the post-increment count, so two concurrent wrong guesses both count.
	IncrementOtpAttempts(email string) (int, error)
	DeleteOtpChallenge(email string) error

	// Notification operations
	CreateNotification(n *models.BookingNotification) (*models.BookingNotification, error)
	// ListNotifications returns records newest-first, optionally only those
	// with ReceivedAt strictly after since. A limit <= 0 means no limit.
	ListNotifications(since *time.Time, limit int) ([]*models.BookingNotification, error)
	DeleteNotification(id string) error
	DeleteAllNotifications() (int64, error)
	// DeleteNotificationsBefore removes records with ReceivedAt strictly
	// before cutoff and reports how many went.
	DeleteNotificationsBefore(cutoff time.Time) (int64, error)

	// Housekeeping blob operations
	SaveHousekeeping(rec *models.HousekeepingRecord) error
	LoadHousekeeping(recType string) (*models.HousekeepingRecord, error)
	ListHousekeepingTypes() ([]string, error)
	DeleteHousekeeping(recType string) error

	// Room config operations
	GetRoomConfig() (*models.RoomConfig, error)
	SetRoomConfig(cfg *models.RoomConfig) error
}
