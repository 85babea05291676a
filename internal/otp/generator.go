package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate produces a numeric one-time code of exactly the given digit width,
// drawn uniformly from [10^(digits-1), 10^digits). The width is per-call: the
// student/faculty flows use 5 digits, the admin flow 6.
func Generate(digits int) (string, error) {
	if digits < 2 || digits > 18 {
		return "", fmt.Errorf("otp: invalid digit width %d", digits)
	}

	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}

	// Uniform over [low, 10*low), so the leading digit is never zero.
	n, err := rand.Int(rand.Reader, big.NewInt(9*low))
	if err != nil {
		return "", fmt.Errorf("otp: read random: %w", err)
	}

	return fmt.Sprintf("%d", n.Int64()+low), nil
}
