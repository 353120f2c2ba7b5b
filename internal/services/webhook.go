package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/miamibeach-ops/hk-backend/config"
	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

// WebhookService turns raw PMS booking payloads into stored notifications
type WebhookService struct {
	store storage.Store
}

// NewWebhookService creates a new webhook ingestion service
func NewWebhookService(store storage.Store) *WebhookService {
	return &WebhookService{store: store}
}

// Ingest normalizes one inbound booking event and persists it. The payload
// is taken as-is: no schema validation, missing fields default safely.
func (s *WebhookService) Ingest(payload map[string]interface{}) (*models.BookingNotification, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	n := &models.BookingNotification{
		Type:       models.NotificationTypeBookingUpdate,
		BookingID:  stringField(payload, "id", "bookingId"),
		PropertyID: propertyID(payload),
		Action:     DetermineAction(payload),
		GuestName:  GuestName(payload),
		RoomID:     stringField(payload, "roomId"),
		Arrival:    stringField(payload, "arrival"),
		Departure:  stringField(payload, "departure"),
		Status:     stringField(payload, "status"),
		Processed:  false,
		RawData:    datatypes.JSON(raw),
	}

	return s.store.CreateNotification(n)
}

// DetermineAction classifies the booking event. The rules are a priority
// chain, not independent predicates: cancellation wins even when the
// timestamps would also match a new booking.
func DetermineAction(data map[string]interface{}) string {
	if present(data["cancelTime"]) {
		return models.ActionCancelled
	}
	if status, _ := data["status"].(string); status == "request" {
		return models.ActionNewRequest
	}
	bookingTime := data["bookingTime"]
	modifiedTime := data["modifiedTime"]
	if present(bookingTime) && present(modifiedTime) && fmt.Sprint(bookingTime) == fmt.Sprint(modifiedTime) {
		return models.ActionNewBooking
	}
	return models.ActionModified
}

// GuestName builds the display name from first/last name fields, or the
// placeholder when no first name came through.
func GuestName(data map[string]interface{}) string {
	first, _ := data["firstName"].(string)
	if first == "" {
		return models.UnknownGuest
	}
	last, _ := data["lastName"].(string)
	return strings.TrimSpace(first + " " + last)
}

// present mirrors the truthiness the PMS relies on: a field counts only
// when it exists, is non-nil and is not an empty string.
func present(v interface{}) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// stringField returns the first present key as a string, or nil. Numeric
// ids arrive as json.Number when the handler decodes with UseNumber.
func stringField(data map[string]interface{}, keys ...string) *string {
	for _, key := range keys {
		v, ok := data[key]
		if !ok || !present(v) {
			continue
		}
		s := fmt.Sprint(v)
		return &s
	}
	return nil
}

// propertyID falls back to the configured single-property default when the
// payload has none.
func propertyID(data map[string]interface{}) int64 {
	if v, ok := data["propertyId"]; ok && v != nil {
		switch t := v.(type) {
		case json.Number:
			if n, err := t.Int64(); err == nil {
				return n
			}
		case float64:
			return int64(t)
		case string:
			if n, err := strconv.ParseInt(t, 10, 64); err == nil {
				return n
			}
		}
	}
	return config.AppConfig.DefaultPropertyID
}
