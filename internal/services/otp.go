package services

import (
	"errors"
	"log"
	"time"

	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
	"github.com/miamibeach-ops/hk-backend/internal/utils"
)

// OTP flow errors, mapped to HTTP statuses by the auth handler
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDeliveryFailed  = errors.New("failed to send OTP email")
	ErrNoChallenge     = errors.New("no OTP found")
	ErrOtpExpired      = errors.New("OTP expired")
	ErrInvalidOtp      = errors.New("invalid OTP")
	ErrTooManyAttempts = errors.New("too many attempts")
)

// OTPService issues and verifies one-time login codes for staff users
type OTPService struct {
	store  storage.Store
	mailer Mailer
}

// NewOTPService creates a new OTP service
func NewOTPService(store storage.Store, mailer Mailer) *OTPService {
	return &OTPService{store: store, mailer: mailer}
}

// RequestChallenge issues a fresh challenge for the email and mails the
// code. At most one challenge lives per email: a second request overwrites
// the first, so the old code stops working. The code is never returned.
func (s *OTPService) RequestChallenge(email string) error {
	user, err := s.store.GetUserByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return err
	}

	ch := &models.OtpChallenge{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(models.OtpTTL),
		Attempts:  0,
		UserID:    user.ID,
	}
	if err := s.store.UpsertOtpChallenge(ch); err != nil {
		return err
	}

	// The challenge stays written when the send fails; the user never saw
	// the code and a re-request overwrites it.
	if err := s.mailer.SendOTPEmail(email, code); err != nil {
		log.Printf("OTP delivery to %s failed: %v", email, err)
		return ErrDeliveryFailed
	}
	return nil
}

// Verify checks a submitted code against the live challenge for the email.
// Success consumes the challenge and returns the authenticated user.
func (s *OTPService) Verify(email, code string) (*models.User, error) {
	ch, err := s.store.GetOtpChallenge(email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoChallenge
	}
	if err != nil {
		return nil, err
	}

	// Expiry is checked before the code comparison: an expired-but-correct
	// code is always rejected.
	if time.Now().After(ch.ExpiresAt) {
		if err := s.store.DeleteOtpChallenge(email); err != nil {
			return nil, err
		}
		return nil, ErrOtpExpired
	}

	if ch.Code != code {
		attempts, err := s.store.IncrementOtpAttempts(email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if attempts >= models.MaxOtpAttempts {
			// The third wrong guess is terminal, not just counted
			if err := s.store.DeleteOtpChallenge(email); err != nil {
				return nil, err
			}
			return nil, ErrTooManyAttempts
		}
		return nil, ErrInvalidOtp
	}

	user, err := s.store.GetUser(ch.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		// Account deleted between issue and verify
		if delErr := s.store.DeleteOtpChallenge(email); delErr != nil {
			return nil, delErr
		}
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// Single use: success always consumes the challenge
	if err := s.store.DeleteOtpChallenge(email); err != nil {
		return nil, err
	}
	return user, nil
}
