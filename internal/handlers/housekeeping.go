package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

// HousekeepingHandler serves the typed blob storage used by the HK app
type HousekeepingHandler struct {
	store storage.Store
}

// NewHousekeepingHandler creates a new housekeeping handler
func NewHousekeepingHandler(store storage.Store) *HousekeepingHandler {
	return &HousekeepingHandler{store: store}
}

// Save stores one typed blob, replacing any previous one of the same type
func (h *HousekeepingHandler) Save(c *fiber.Ctx) error {
	var req struct {
		Type      string          `json:"type"`
		Data      json.RawMessage `json:"data"`
		Timestamp string          `json:"timestamp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing type"})
	}

	if req.Timestamp == "" {
		req.Timestamp = time.Now().In(bdLocation()).Format("1/2/2006, 3:04:05 PM")
	}

	rec := &models.HousekeepingRecord{
		Type:      req.Type,
		Data:      datatypes.JSON(req.Data),
		Timestamp: req.Timestamp,
	}
	if err := h.store.SaveHousekeeping(rec); err != nil {
		log.Printf("Save error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("Saved: %s", req.Type)
	return c.JSON(fiber.Map{"success": true, "type": req.Type})
}

// Load returns one blob by type, or null data when none exists
func (h *HousekeepingHandler) Load(c *fiber.Ctx) error {
	recType := c.Query("type")
	if recType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing type"})
	}

	rec, err := h.store.LoadHousekeeping(recType)
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(fiber.Map{"data": nil})
	}
	if err != nil {
		log.Printf("Load error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":      rec.Data,
		"timestamp": rec.Timestamp,
	})
}

// List returns the stored blob types
func (h *HousekeepingHandler) List(c *fiber.Ctx) error {
	types, err := h.store.ListHousekeepingTypes()
	if err != nil {
		// Degrade to an empty listing rather than erroring the client
		return c.JSON(fiber.Map{"types": []string{}})
	}
	return c.JSON(fiber.Map{"types": types})
}

// Delete removes one blob by type
func (h *HousekeepingHandler) Delete(c *fiber.Ctx) error {
	recType := c.Query("type")
	if recType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing type"})
	}

	if err := h.store.DeleteHousekeeping(recType); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}
