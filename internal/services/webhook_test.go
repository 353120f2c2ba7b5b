package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miamibeach-ops/hk-backend/config"
	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

func init() {
	config.AppConfig = &config.Config{DefaultPropertyID: 279646, DefaultTotalRooms: 45}
}

func TestDetermineAction(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		want    string
	}{
		{
			// cancellation wins even when the request status also matches
			name:    "cancel beats request status",
			payload: map[string]interface{}{"cancelTime": "2026-08-01 10:00:00", "status": "request"},
			want:    models.ActionCancelled,
		},
		{
			name: "cancel beats equal timestamps",
			payload: map[string]interface{}{
				"cancelTime":   "2026-08-01 10:00:00",
				"bookingTime":  "2026-07-30 09:00:00",
				"modifiedTime": "2026-07-30 09:00:00",
			},
			want: models.ActionCancelled,
		},
		{
			name: "request status beats new booking",
			payload: map[string]interface{}{
				"status":       "request",
				"bookingTime":  "2026-07-30 09:00:00",
				"modifiedTime": "2026-07-30 09:00:00",
			},
			want: models.ActionNewRequest,
		},
		{
			name: "equal booking and modified time is a new booking",
			payload: map[string]interface{}{
				"bookingTime":  "2026-07-30 09:00:00",
				"modifiedTime": "2026-07-30 09:00:00",
				"status":       "confirmed",
			},
			want: models.ActionNewBooking,
		},
		{
			name: "differing modified time is a modification",
			payload: map[string]interface{}{
				"bookingTime":  "2026-07-30 09:00:00",
				"modifiedTime": "2026-07-31 11:00:00",
			},
			want: models.ActionModified,
		},
		{
			name:    "empty cancel time does not count as cancelled",
			payload: map[string]interface{}{"cancelTime": ""},
			want:    models.ActionModified,
		},
		{
			name:    "empty payload falls through to modified",
			payload: map[string]interface{}{},
			want:    models.ActionModified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineAction(tt.payload))
		})
	}
}

func TestGuestName(t *testing.T) {
	assert.Equal(t, "Jane Doe", GuestName(map[string]interface{}{"firstName": "Jane", "lastName": "Doe"}))
	assert.Equal(t, "Jane", GuestName(map[string]interface{}{"firstName": "Jane"}))
	assert.Equal(t, "Jane", GuestName(map[string]interface{}{"firstName": "Jane", "lastName": ""}))
	assert.Equal(t, models.UnknownGuest, GuestName(map[string]interface{}{"lastName": "Doe"}))
	assert.Equal(t, models.UnknownGuest, GuestName(map[string]interface{}{}))
}

func TestIngestNormalizesPayload(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewWebhookService(store)

	payload := map[string]interface{}{
		"id":           json.Number("7421001"),
		"roomId":       json.Number("12"),
		"arrival":      "2026-09-01",
		"departure":    "2026-09-04",
		"status":       "confirmed",
		"firstName":    "Jane",
		"lastName":     "Doe",
		"bookingTime":  "2026-08-20 10:00:00",
		"modifiedTime": "2026-08-20 10:00:00",
	}

	n, err := svc.Ingest(payload)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationTypeBookingUpdate, n.Type)
	require.NotNil(t, n.BookingID)
	assert.Equal(t, "7421001", *n.BookingID)
	require.NotNil(t, n.RoomID)
	assert.Equal(t, "12", *n.RoomID)
	assert.Equal(t, int64(279646), n.PropertyID) // single-property default
	assert.Equal(t, models.ActionNewBooking, n.Action)
	assert.Equal(t, "Jane Doe", n.GuestName)
	assert.False(t, n.Processed)
	assert.WithinDuration(t, time.Now(), n.ReceivedAt, 5*time.Second)

	// The raw payload is preserved for audit
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(n.RawData, &raw))
	assert.Equal(t, "Jane", raw["firstName"])
}

func TestIngestEmptyPayloadDefaultsSafely(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewWebhookService(store)

	n, err := svc.Ingest(map[string]interface{}{})
	require.NoError(t, err)

	assert.Nil(t, n.BookingID)
	assert.Nil(t, n.RoomID)
	assert.Nil(t, n.Status)
	assert.Equal(t, int64(279646), n.PropertyID)
	assert.Equal(t, models.ActionModified, n.Action)
	assert.Equal(t, models.UnknownGuest, n.GuestName)
	assert.NotEmpty(t, n.ID)
}

func TestIngestExplicitPropertyID(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewWebhookService(store)

	n, err := svc.Ingest(map[string]interface{}{"propertyId": json.Number("555001")})
	require.NoError(t, err)
	assert.Equal(t, int64(555001), n.PropertyID)
}
