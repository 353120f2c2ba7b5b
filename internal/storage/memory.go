package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miamibeach-ops/hk-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development
type MemoryStore struct {
	users         map[string]*models.User
	otps          map[string]*models.OtpChallenge
	notifications map[string]*models.BookingNotification
	housekeeping  map[string]*models.HousekeepingRecord
	roomConfig    *models.RoomConfig

	userMu   sync.RWMutex
	otpMu    sync.RWMutex
	notifMu  sync.RWMutex
	hkMu     sync.RWMutex
	configMu sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		otps:          make(map[string]*models.OtpChallenge),
		notifications: make(map[string]*models.BookingNotification),
		housekeeping:  make(map[string]*models.HousekeepingRecord),
	}
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("email already in use")
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	m.users[user.ID] = &cp
	return user, nil
}

func (m *MemoryStore) GetUser(id string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllUsers() ([]*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	existing, exists := m.users[user.ID]
	if !exists {
		return ErrNotFound
	}
	for id, other := range m.users {
		if id != user.ID && other.Email == user.Email {
			return fmt.Errorf("email already in use")
		}
	}

	cp := *user
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	m.users[user.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteUser(id string) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	delete(m.users, id)
	return nil
}

// OTP challenge operations

func (m *MemoryStore) UpsertOtpChallenge(ch *models.OtpChallenge) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	cp := *ch
	m.otps[ch.Email] = &cp
	return nil
}

func (m *MemoryStore) GetOtpChallenge(email string) (*models.OtpChallenge, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	ch, exists := m.otps[email]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (m *MemoryStore) IncrementOtpAttempts(email string) (int, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	ch, exists := m.otps[email]
	if !exists {
		return 0, ErrNotFound
	}
	ch.Attempts++
	return ch.Attempts, nil
}

func (m *MemoryStore) DeleteOtpChallenge(email string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	delete(m.otps, email)
	return nil
}

// Notification operations

func (m *MemoryStore) CreateNotification(n *models.BookingNotification) (*models.BookingNotification, error) {
	m.notifMu.Lock()
	defer m.notifMu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = models.NotificationTypeBookingUpdate
	}
	n.ReceivedAt = time.Now().UTC()

	cp := *n
	m.notifications[n.ID] = &cp
	return n, nil
}

func (m *MemoryStore) ListNotifications(since *time.Time, limit int) ([]*models.BookingNotification, error) {
	m.notifMu.RLock()
	defer m.notifMu.RUnlock()

	var notifications []*models.BookingNotification
	for _, n := range m.notifications {
		if since != nil && !n.ReceivedAt.After(*since) {
			continue
		}
		cp := *n
		notifications = append(notifications, &cp)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].ReceivedAt.After(notifications[j].ReceivedAt)
	})

	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (m *MemoryStore) DeleteNotification(id string) error {
	m.notifMu.Lock()
	defer m.notifMu.Unlock()

	delete(m.notifications, id)
	return nil
}

func (m *MemoryStore) DeleteAllNotifications() (int64, error) {
	m.notifMu.Lock()
	defer m.notifMu.Unlock()

	deleted := int64(len(m.notifications))
	m.notifications = make(map[string]*models.BookingNotification)
	return deleted, nil
}

func (m *MemoryStore) DeleteNotificationsBefore(cutoff time.Time) (int64, error) {
	m.notifMu.Lock()
	defer m.notifMu.Unlock()

	var deleted int64
	for id, n := range m.notifications {
		if n.ReceivedAt.Before(cutoff) {
			delete(m.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

// Housekeeping blob operations

func (m *MemoryStore) SaveHousekeeping(rec *models.HousekeepingRecord) error {
	m.hkMu.Lock()
	defer m.hkMu.Unlock()

	rec.UpdatedAt = time.Now()
	cp := *rec
	m.housekeeping[rec.Type] = &cp
	return nil
}

func (m *MemoryStore) LoadHousekeeping(recType string) (*models.HousekeepingRecord, error) {
	m.hkMu.RLock()
	defer m.hkMu.RUnlock()

	rec, exists := m.housekeeping[recType]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) ListHousekeepingTypes() ([]string, error) {
	m.hkMu.RLock()
	defer m.hkMu.RUnlock()

	types := make([]string, 0, len(m.housekeeping))
	for t := range m.housekeeping {
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}

func (m *MemoryStore) DeleteHousekeeping(recType string) error {
	m.hkMu.Lock()
	defer m.hkMu.Unlock()

	delete(m.housekeeping, recType)
	return nil
}

// Room config operations

func (m *MemoryStore) GetRoomConfig() (*models.RoomConfig, error) {
	m.configMu.RLock()
	defer m.configMu.RUnlock()

	if m.roomConfig == nil {
		return nil, ErrNotFound
	}
	cp := *m.roomConfig
	return &cp, nil
}

func (m *MemoryStore) SetRoomConfig(cfg *models.RoomConfig) error {
	m.configMu.Lock()
	defer m.configMu.Unlock()

	cfg.ID = models.RoomConfigKey
	cfg.UpdatedAt = time.Now().UTC()
	cp := *cfg
	m.roomConfig = &cp
	return nil
}
