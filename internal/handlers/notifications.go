package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

const defaultNotificationLimit = 50

// NotificationHandler serves the notification query and maintenance surface
type NotificationHandler struct {
	store storage.Store
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store storage.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns notifications newest-first, optionally only those received
// strictly after `since`, capped at `limit` (default 50)
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := parseSince(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid since timestamp",
			})
		}
		since = &t
	}

	limit := c.QueryInt("limit", defaultNotificationLimit)
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	notifications, err := h.store.ListNotifications(since, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// DeleteOne removes a single notification by id
func (h *NotificationHandler) DeleteOne(c *fiber.Ctx) error {
	if err := h.store.DeleteNotification(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteAll removes every notification and reports how many went
func (h *NotificationHandler) DeleteAll(c *fiber.Ctx) error {
	deleted, err := h.store.DeleteAllNotifications()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"deleted": deleted,
	})
}

func parseSince(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, err
}
