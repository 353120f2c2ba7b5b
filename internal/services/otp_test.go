package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOTPEmail(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func newOTPFixture(t *testing.T) (*OTPService, *storage.MemoryStore, *mockMailer, *models.User) {
	t.Helper()

	store := storage.NewMemoryStore()
	user, err := store.CreateUser(&models.User{Email: "staff@example.com", Name: "Staff"})
	require.NoError(t, err)

	mailer := &mockMailer{}
	return NewOTPService(store, mailer), store, mailer, user
}

func TestRequestChallengeUnknownUser(t *testing.T) {
	svc, _, mailer, _ := newOTPFixture(t)

	err := svc.RequestChallenge("nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	mailer.AssertNotCalled(t, "SendOTPEmail")
}

func TestRequestChallengeIssuesAndMails(t *testing.T) {
	svc, store, mailer, user := newOTPFixture(t)

	var sentCode string
	mailer.On("SendOTPEmail", user.Email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentCode = args.String(1) }).
		Return(nil)

	require.NoError(t, svc.RequestChallenge(user.Email))
	mailer.AssertExpectations(t)

	ch, err := store.GetOtpChallenge(user.Email)
	require.NoError(t, err)
	require.Equal(t, sentCode, ch.Code)
	require.Equal(t, 0, ch.Attempts)
	require.Equal(t, user.ID, ch.UserID)
	require.WithinDuration(t, time.Now().Add(models.OtpTTL), ch.ExpiresAt, 5*time.Second)
}

func TestRequestChallengeDeliveryFailureKeepsChallenge(t *testing.T) {
	svc, store, mailer, user := newOTPFixture(t)

	mailer.On("SendOTPEmail", user.Email, mock.AnythingOfType("string")).
		Return(errors.New("mail gateway unreachable"))

	err := svc.RequestChallenge(user.Email)
	require.ErrorIs(t, err, ErrDeliveryFailed)

	// The record stays written even though the send failed
	_, err = store.GetOtpChallenge(user.Email)
	require.NoError(t, err)
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	svc, _, mailer, user := newOTPFixture(t)

	var codes []string
	mailer.On("SendOTPEmail", user.Email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { codes = append(codes, args.String(1)) }).
		Return(nil)

	require.NoError(t, svc.RequestChallenge(user.Email))
	require.NoError(t, svc.RequestChallenge(user.Email))
	require.Len(t, codes, 2)

	if codes[0] == codes[1] {
		t.Skip("random draw produced the same code twice; nothing to distinguish")
	}

	_, err := svc.Verify(user.Email, codes[0])
	require.ErrorIs(t, err, ErrInvalidOtp)

	verified, err := svc.Verify(user.Email, codes[1])
	require.NoError(t, err)
	require.Equal(t, user.ID, verified.ID)
}

func TestVerifyWithoutChallenge(t *testing.T) {
	svc, _, _, user := newOTPFixture(t)

	_, err := svc.Verify(user.Email, "123456")
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestVerifySuccessConsumesChallenge(t *testing.T) {
	svc, _, mailer, user := newOTPFixture(t)

	var code string
	mailer.On("SendOTPEmail", user.Email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { code = args.String(1) }).
		Return(nil)
	require.NoError(t, svc.RequestChallenge(user.Email))

	verified, err := svc.Verify(user.Email, code)
	require.NoError(t, err)
	require.Equal(t, user.Email, verified.Email)

	// Single use: the same code is gone
	_, err = svc.Verify(user.Email, code)
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestThreeWrongGuessesAreTerminal(t *testing.T) {
	svc, _, mailer, user := newOTPFixture(t)

	var code string
	mailer.On("SendOTPEmail", user.Email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { code = args.String(1) }).
		Return(nil)
	require.NoError(t, svc.RequestChallenge(user.Email))

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err := svc.Verify(user.Email, wrong)
	require.ErrorIs(t, err, ErrInvalidOtp)
	_, err = svc.Verify(user.Email, wrong)
	require.ErrorIs(t, err, ErrInvalidOtp)

	// The third wrong guess deletes the challenge, not just counts
	_, err = svc.Verify(user.Email, wrong)
	require.ErrorIs(t, err, ErrTooManyAttempts)

	// Even the correct code is now rejected as missing, not invalid
	_, err = svc.Verify(user.Email, code)
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestExpiredCorrectCodeIsRejected(t *testing.T) {
	svc, store, _, user := newOTPFixture(t)

	require.NoError(t, store.UpsertOtpChallenge(&models.OtpChallenge{
		Email:     user.Email,
		Code:      "654321",
		ExpiresAt: time.Now().Add(-time.Minute),
		UserID:    user.ID,
	}))

	_, err := svc.Verify(user.Email, "654321")
	require.ErrorIs(t, err, ErrOtpExpired)

	// Expiry consumed the challenge
	_, err = svc.Verify(user.Email, "654321")
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestVerifyAfterUserDeleted(t *testing.T) {
	svc, store, mailer, user := newOTPFixture(t)

	var code string
	mailer.On("SendOTPEmail", user.Email, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { code = args.String(1) }).
		Return(nil)
	require.NoError(t, svc.RequestChallenge(user.Email))

	require.NoError(t, store.DeleteUser(user.ID))

	_, err := svc.Verify(user.Email, code)
	require.ErrorIs(t, err, ErrUserNotFound)
}
