package handlers

import (
	"bytes"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/miamibeach-ops/hk-backend/internal/jobs"
	"github.com/miamibeach-ops/hk-backend/internal/services"
)

// WebhookHandler receives PMS booking notifications
type WebhookHandler struct {
	service   *services.WebhookService
	retention *jobs.RetentionJob
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service *services.WebhookService, retention *jobs.RetentionJob) *WebhookHandler {
	return &WebhookHandler{service: service, retention: retention}
}

// HandleBookingWebhook ingests one booking event. It always answers 200:
// the PMS disables or retry-storms the integration on non-2xx responses,
// so internal failures are reported in the body, not the status.
func (h *WebhookHandler) HandleBookingWebhook(c *fiber.Ctx) error {
	log.Printf("=== WEBHOOK RECEIVED === %d bytes", len(c.Body()))

	payload := make(map[string]interface{})
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber() // keep numeric ids exact
	if err := dec.Decode(&payload); err != nil {
		log.Printf("Webhook error: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	notification, err := h.service.Ingest(payload)
	if err != nil {
		log.Printf("Webhook error: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	log.Printf("Notification saved: %s", notification.ID)

	// Fire-and-forget cleanup of old notifications; never affects the
	// response already built above
	h.retention.Trigger()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":        true,
		"notificationId": notification.ID,
		"message":        "Webhook received",
	})
}
