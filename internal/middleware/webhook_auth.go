package middleware

import (
	"crypto/subtle"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/miamibeach-ops/hk-backend/config"
)

// ValidateWebhookToken validates that the webhook request carries the
// shared token configured for the PMS integration
func ValidateWebhookToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := config.AppConfig.WebhookToken
		if token == "" {
			// Log error but don't expose to client
			log.Println("ERROR: WEBHOOK_TOKEN not set")
			return c.Status(500).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		got := c.Get("X-Webhook-Token")
		if got == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Missing webhook token",
			})
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return c.Status(401).JSON(fiber.Map{
				"error": "Invalid webhook token",
			})
		}

		return c.Next()
	}
}
