package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/miamibeach-ops/hk-backend/config"
	"github.com/miamibeach-ops/hk-backend/database"
)

// Timezone is the property's local timezone (Bangladesh, GMT+6)
const Timezone = "Asia/Dhaka"

// HealthHandler serves the status endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func bdLocation() *time.Location {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Root returns the API status with property-local timestamps
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	now := time.Now().In(bdLocation())

	storageType := "PostgreSQL Database"
	if config.AppConfig.UseMemoryStore {
		storageType = "In-Memory (Testing)"
	}

	return c.JSON(fiber.Map{
		"status":          "HK API with Auth running",
		"timezone":        Timezone,
		"todayBD":         now.Format("2006-01-02"),
		"timestampBD":     now.Format("1/2/2006, 3:04:05 PM"),
		"timestampUTC":    time.Now().UTC().Format(time.RFC3339),
		"emailConfigured": config.AppConfig.SendGridAPIKey != "",
		"webhookEndpoint": "/webhook/booking",
		"storage":         storageType,
	})
}

// Check is the monitoring health check with database status
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := 200

	dbHealthy := true
	if !config.AppConfig.UseMemoryStore && database.DB != nil {
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			statusCode = 503
			dbHealthy = false
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status": status,
		"services": fiber.Map{
			"database": dbHealthy,
			"email":    config.AppConfig.SendGridAPIKey != "",
		},
	})
}
