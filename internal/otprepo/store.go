// Package otprepo stores one-time passwords issued for mobile numbers.
package otprepo

import (
	"context"
	"fmt"

	"github.com/go-petr/instapay/internal/domain"
)

// Store keeps at most one pending OTP per mobile number.
type Store interface {
	// Save replaces any pending OTP of the same mobile number.
	Save(ctx context.Context, otp domain.OTP) error
	// Get returns domain.ErrInvalidOTP when nothing is pending.
	Get(ctx context.Context, mobileNumber string) (domain.OTP, error)
	Delete(ctx context.Context, mobileNumber string) error
}

// Supported store kinds.
const (
	KindMemory = "memory"
	KindRedis  = "redis"
)

// RedisOptions holds the connection settings of the Redis store.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// New returns the store of the given kind.
func New(kind string, opts RedisOptions) (Store, error) {
	switch kind {
	case KindMemory, "":
		return NewRepoMem(), nil
	case KindRedis:
		return NewRepoRedis(opts), nil
	}

	return nil, fmt.Errorf("unsupported otp store %q", kind)
}
