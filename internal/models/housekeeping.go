package models

import (
	"time"

	"gorm.io/datatypes"
)

// HousekeepingRecord is a typed blob the housekeeping app saves and loads
// wholesale. The server never looks inside Data.
type HousekeepingRecord struct {
	Type      string         `gorm:"primaryKey" json:"type"`
	Data      datatypes.JSON `json:"data"`
	Timestamp string         `json:"timestamp"`
	UpdatedAt time.Time      `json:"updated_at"`
}
