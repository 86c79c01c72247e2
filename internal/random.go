package internal

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

const (
	otpMin  = 100000
	otpSpan = 900000
)

// NewOTP returns a 6-digit one-time code drawn uniformly from
// [100000, 999999] using crypto/rand.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}

	otp := strconv.FormatInt(otpMin+n.Int64(), 10)
	if len(otp) != 6 {
		return "", fmt.Errorf("invalid otp generation length")
	}
	return otp, nil
}
