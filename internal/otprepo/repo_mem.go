package otprepo

import (
	"context"
	"sync"

	"github.com/go-petr/instapay/internal/domain"
)

// RepoMem keeps OTPs in process memory.
type RepoMem struct {
	mu   sync.Mutex
	otps map[string]domain.OTP
}

// NewRepoMem returns an empty RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{otps: make(map[string]domain.OTP)}
}

// Save stores the OTP.
func (r *RepoMem) Save(ctx context.Context, otp domain.OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.otps[otp.MobileNumber] = otp

	return nil
}

// Get returns the pending OTP of the mobile number, expired or not.
func (r *RepoMem) Get(ctx context.Context, mobileNumber string) (domain.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	otp, ok := r.otps[mobileNumber]
	if !ok {
		return domain.OTP{}, domain.ErrInvalidOTP
	}

	return otp, nil
}

// Delete removes the pending OTP of the mobile number.
func (r *RepoMem) Delete(ctx context.Context, mobileNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.otps, mobileNumber)

	return nil
}
