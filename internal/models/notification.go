package models

import (
	"time"

	"gorm.io/datatypes"
)

// BookingNotification is one ingested PMS webhook event. Created once,
// never updated; only the retention sweep or an explicit delete removes it.
type BookingNotification struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Type string `gorm:"not null" json:"type"`

	// Passthrough fields from the inbound payload, each nullable
	BookingID *string `json:"bookingId"`
	RoomID    *string `json:"roomId"`
	Arrival   *string `json:"arrival"`
	Departure *string `json:"departure"`
	Status    *string `json:"status"`

	PropertyID int64  `json:"propertyId"`
	Action     string `gorm:"not null" json:"action"`
	GuestName  string `json:"guestName"`

	// Stamped by the store at write time, never client-controlled, so
	// retention and "since" queries ignore client clock skew.
	ReceivedAt time.Time `gorm:"index;not null" json:"receivedAt"`

	// Reserved for downstream consumers; the server never flips it.
	Processed bool `gorm:"default:false" json:"processed"`

	// Full original payload, kept for audit/debugging
	RawData datatypes.JSON `json:"rawData"`
}

// NotificationTypeBookingUpdate tags every webhook-created record.
const NotificationTypeBookingUpdate = "booking_update"

// Action constants
const (
	ActionCancelled  = "cancelled"
	ActionNewRequest = "new_request"
	ActionNewBooking = "new_booking"
	ActionModified   = "modified"
)

// UnknownGuest is the display placeholder when the payload has no first name.
const UnknownGuest = "Unknown Guest"
