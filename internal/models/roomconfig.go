package models

import "time"

// RoomConfig is the mutable total-room-count setting, adjusted when rooms
// go under maintenance. A single row keyed by RoomConfigKey.
type RoomConfig struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	Count     int       `json:"count"`
	Reason    string    `json:"reason"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

const RoomConfigKey = "total_rooms"
