// Package otpservice manages business logic layer of one-time passwords.
package otpservice

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/randompkg"
)

// Store provides OTP storage needed by OTP service layer.
type Store interface {
	Save(ctx context.Context, otp domain.OTP) error
	Get(ctx context.Context, mobileNumber string) (domain.OTP, error)
	Delete(ctx context.Context, mobileNumber string) error
}

// Service facilitates OTP service layer logic.
type Service struct {
	store  Store
	length int
	ttl    time.Duration
	now    func() time.Time
}

// New returns OTP service issuing codes of the given length valid for ttl.
func New(store Store, length int, ttl time.Duration) (*Service, error) {
	if length <= 0 {
		return nil, errors.New("otp length must be positive")
	}

	if ttl <= 0 {
		return nil, errors.New("otp ttl must be positive")
	}

	return &Service{
		store:  store,
		length: length,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Send issues a fresh code for the mobile number, replacing any pending one.
//
// There is no SMS gateway; the code is written to the log.
func (s *Service) Send(ctx context.Context, mobileNumber string) error {
	l := zerolog.Ctx(ctx)

	otp := domain.OTP{
		MobileNumber: mobileNumber,
		Code:         randompkg.Digits(s.length),
		ExpiresAt:    s.now().Add(s.ttl).UTC(),
	}

	if err := s.store.Save(ctx, otp); err != nil {
		l.Error().Err(err).Str("mobile_number", mobileNumber).Send()
		return err
	}

	l.Info().
		Str("mobile_number", mobileNumber).
		Str("otp", otp.Code).
		Time("expires_at", otp.ExpiresAt).
		Msg("otp issued")

	return nil
}

// Verify consumes the pending code of the mobile number if it matches.
//
// An expired code is discarded. A mismatched code stays pending.
func (s *Service) Verify(ctx context.Context, mobileNumber, code string) error {
	l := zerolog.Ctx(ctx).With().Str("mobile_number", mobileNumber).Logger()

	otp, err := s.store.Get(ctx, mobileNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return err
	}

	if s.now().After(otp.ExpiresAt) {
		if err := s.store.Delete(ctx, mobileNumber); err != nil {
			l.Error().Err(err).Send()
		}

		l.Info().Msg("otp expired")

		return domain.ErrInvalidOTP
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(otp.Code)) != 1 {
		l.Info().Msg("otp mismatch")
		return domain.ErrInvalidOTP
	}

	if err := s.store.Delete(ctx, mobileNumber); err != nil {
		l.Error().Err(err).Send()
		return err
	}

	return nil
}
