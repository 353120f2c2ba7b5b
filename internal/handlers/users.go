package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

// UserHandler serves the staff account CRUD surface
type UserHandler struct {
	store storage.Store
}

// NewUserHandler creates a new user handler
func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

// knownUserFields are mapped to columns; everything else lands in Profile
var knownUserFields = map[string]bool{
	"id": true, "email": true, "name": true, "role": true,
	"profile": true, "created_at": true, "updated_at": true,
}

// List returns all users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.store.GetAllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

// Create adds a user; unknown body fields are kept opaque in the profile
func (h *UserHandler) Create(c *fiber.Ctx) error {
	body := make(map[string]interface{})
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	email, _ := body["email"].(string)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing email",
		})
	}

	user := &models.User{Email: email}
	user.Name, _ = body["name"].(string)
	user.Role, _ = body["role"].(string)
	if profile := extraFields(body); profile != nil {
		user.Profile = profile
	}

	created, err := h.store.CreateUser(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "id": created.ID})
}

// Update overlays the provided fields onto an existing user
func (h *UserHandler) Update(c *fiber.Ctx) error {
	body := make(map[string]interface{})
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	user, err := h.store.GetUser(c.Params("id"))
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if email, ok := body["email"].(string); ok && email != "" {
		user.Email = email
	}
	if name, ok := body["name"].(string); ok {
		user.Name = name
	}
	if role, ok := body["role"].(string); ok {
		user.Role = role
	}
	if merged := mergeProfile(user.Profile, body); merged != nil {
		user.Profile = merged
	}

	if err := h.store.UpdateUser(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete removes a user by id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// extraFields collects the non-column body fields as a JSON blob
func extraFields(body map[string]interface{}) datatypes.JSON {
	extra := make(map[string]interface{})
	for k, v := range body {
		if !knownUserFields[k] {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return nil
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// mergeProfile overlays new extra fields onto the stored profile
func mergeProfile(existing datatypes.JSON, body map[string]interface{}) datatypes.JSON {
	incoming := extraFields(body)
	if incoming == nil {
		return nil
	}
	if len(existing) == 0 {
		return incoming
	}

	merged := make(map[string]interface{})
	if err := json.Unmarshal(existing, &merged); err != nil {
		return incoming
	}
	patch := make(map[string]interface{})
	if err := json.Unmarshal(incoming, &patch); err != nil {
		return incoming
	}
	for k, v := range patch {
		merged[k] = v
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return incoming
	}
	return datatypes.JSON(raw)
}
