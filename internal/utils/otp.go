package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// GenerateOTPCode generates a cryptographically secure 6-digit code in
// [100000, 999999], so a leading zero never occurs.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
