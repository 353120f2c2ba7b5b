package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/miamibeach-ops/hk-backend/internal/middleware"
	"github.com/miamibeach-ops/hk-backend/internal/services"
)

// AuthHandler handles OTP login requests
type AuthHandler struct {
	otp      *services.OTPService
	validate *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(otp *services.OTPService) *AuthHandler {
	return &AuthHandler{
		otp:      otp,
		validate: validator.New(),
	}
}

// SendOTP issues a login challenge and emails the code
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := h.validate.Var(req.Email, "required,email"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Valid email is required",
		})
	}

	if err := h.otp.RequestChallenge(req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "User not found",
			})
		case errors.Is(err, services.ErrDeliveryFailed):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to send OTP email",
			})
		default:
			log.Printf("OTP error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent",
	})
}

// VerifyOTP checks the submitted code and returns the authenticated user
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	user, err := h.otp.Verify(req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoChallenge):
			return otpFailure(c, "No OTP found")
		case errors.Is(err, services.ErrOtpExpired):
			return otpFailure(c, "OTP expired")
		case errors.Is(err, services.ErrTooManyAttempts):
			return otpFailure(c, "Too many attempts")
		case errors.Is(err, services.ErrInvalidOtp):
			return otpFailure(c, "Invalid OTP")
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "User not found",
			})
		default:
			log.Printf("OTP verify error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to issue session token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func otpFailure(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
