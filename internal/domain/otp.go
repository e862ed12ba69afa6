package domain

import (
	"errors"
	"time"
)

// ErrInvalidOTP indicates an unknown, mismatched or expired one-time password.
var ErrInvalidOTP = errors.New("Invalid OTP or OTP expired")

// OTP holds a one-time password issued for a mobile number.
type OTP struct {
	MobileNumber string    `json:"mobile_number"`
	Code         string    `json:"code"`
	ExpiresAt    time.Time `json:"expires_at"`
}
