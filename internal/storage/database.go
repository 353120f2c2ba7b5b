package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/miamibeach-ops/hk-backend/internal/models"
)

// DatabaseStore implements Store on PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	res := s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"profile": user.Profile,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) DeleteUser(id string) error {
	return s.db.Delete(&models.User{}, "id = ?", id).Error
}

// OTP challenge operations

func (s *DatabaseStore) UpsertOtpChallenge(ch *models.OtpChallenge) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(ch).Error
}

func (s *DatabaseStore) GetOtpChallenge(email string) (*models.OtpChallenge, error) {
	var ch models.OtpChallenge
	if err := s.db.First(&ch, "email = ?", email).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &ch, nil
}

func (s *DatabaseStore) IncrementOtpAttempts(email string) (int, error) {
	// Single UPDATE so concurrent wrong guesses each count exactly once
	res := s.db.Model(&models.OtpChallenge{}).Where("email = ?", email).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var ch models.OtpChallenge
	if err := s.db.First(&ch, "email = ?", email).Error; err != nil {
		return 0, mapNotFound(err)
	}
	return ch.Attempts, nil
}

func (s *DatabaseStore) DeleteOtpChallenge(email string) error {
	return s.db.Delete(&models.OtpChallenge{}, "email = ?", email).Error
}

// Notification operations

func (s *DatabaseStore) CreateNotification(n *models.BookingNotification) (*models.BookingNotification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = models.NotificationTypeBookingUpdate
	}
	// ReceivedAt is stamped here, never taken from the caller
	n.ReceivedAt = time.Now().UTC()
	if err := s.db.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (s *DatabaseStore) ListNotifications(since *time.Time, limit int) ([]*models.BookingNotification, error) {
	q := s.db.Order("received_at DESC")
	if since != nil {
		q = q.Where("received_at > ?", *since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var notifications []*models.BookingNotification
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *DatabaseStore) DeleteNotification(id string) error {
	// Deleting an already-deleted record is a no-op, not an error
	return s.db.Delete(&models.BookingNotification{}, "id = ?", id).Error
}

func (s *DatabaseStore) DeleteAllNotifications() (int64, error) {
	res := s.db.Where("1 = 1").Delete(&models.BookingNotification{})
	return res.RowsAffected, res.Error
}

func (s *DatabaseStore) DeleteNotificationsBefore(cutoff time.Time) (int64, error) {
	res := s.db.Where("received_at < ?", cutoff).Delete(&models.BookingNotification{})
	return res.RowsAffected, res.Error
}

// Housekeeping blob operations

func (s *DatabaseStore) SaveHousekeeping(rec *models.HousekeepingRecord) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func (s *DatabaseStore) LoadHousekeeping(recType string) (*models.HousekeepingRecord, error) {
	var rec models.HousekeepingRecord
	if err := s.db.First(&rec, "type = ?", recType).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &rec, nil
}

func (s *DatabaseStore) ListHousekeepingTypes() ([]string, error) {
	var types []string
	if err := s.db.Model(&models.HousekeepingRecord{}).Order("type").Pluck("type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *DatabaseStore) DeleteHousekeeping(recType string) error {
	return s.db.Delete(&models.HousekeepingRecord{}, "type = ?", recType).Error
}

// Room config operations

func (s *DatabaseStore) GetRoomConfig() (*models.RoomConfig, error) {
	var cfg models.RoomConfig
	if err := s.db.First(&cfg, "id = ?", models.RoomConfigKey).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &cfg, nil
}

func (s *DatabaseStore) SetRoomConfig(cfg *models.RoomConfig) error {
	cfg.ID = models.RoomConfigKey
	cfg.UpdatedAt = time.Now().UTC()
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(cfg).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
