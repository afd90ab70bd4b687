// Package otp generates one-time login codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeLength is the number of digits in a generated code.
const CodeLength = 6

// TTL is how long a generated code stays valid.
const TTL = 5 * time.Minute

// GenerateCode returns a zero-padded six-digit numeric code.
func GenerateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate one-time code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Expiry returns the expiry timestamp for a code generated now.
func Expiry(now time.Time) time.Time {
	return now.Add(TTL)
}
