package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/miamibeach-ops/hk-backend/config"
	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

// RoomConfigHandler serves the dynamic total-room-count setting
type RoomConfigHandler struct {
	store    storage.Store
	validate *validator.Validate
}

// NewRoomConfigHandler creates a new room config handler
func NewRoomConfigHandler(store storage.Store) *RoomConfigHandler {
	return &RoomConfigHandler{
		store:    store,
		validate: validator.New(),
	}
}

// Get returns the configured room count, or the default when unset
func (h *RoomConfigHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.store.GetRoomConfig()
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(fiber.Map{
			"success":    true,
			"totalRooms": config.AppConfig.DefaultTotalRooms,
			"source":     "default",
		})
	}
	if err != nil {
		log.Printf("Get room config error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"totalRooms":  cfg.Count,
		"lastUpdated": cfg.UpdatedAt,
		"updatedBy":   cfg.UpdatedBy,
		"reason":      cfg.Reason,
		"source":      "database",
	})
}

// Set updates the room count, recording who changed it and why
func (h *RoomConfigHandler) Set(c *fiber.Ctx) error {
	var req struct {
		TotalRooms int    `json:"totalRooms" validate:"required,min=1,max=100"`
		Reason     string `json:"reason"`
		UpdatedBy  string `json:"updatedBy"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "totalRooms must be a number between 1 and 100",
		})
	}

	if req.Reason == "" {
		req.Reason = "Manual update"
	}
	if req.UpdatedBy == "" {
		req.UpdatedBy = "system"
	}

	cfg := &models.RoomConfig{
		Count:     req.TotalRooms,
		Reason:    req.Reason,
		UpdatedBy: req.UpdatedBy,
	}
	if err := h.store.SetRoomConfig(cfg); err != nil {
		log.Printf("Update room config error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	log.Printf("Room count updated to %d by %s: %s", req.TotalRooms, req.UpdatedBy, req.Reason)
	return c.JSON(fiber.Map{"success": true, "totalRooms": req.TotalRooms})
}
