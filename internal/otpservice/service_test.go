package otpservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/internal/otprepo"
	"github.com/go-petr/instapay/pkg/randompkg"
)

func newService(t *testing.T, store Store) *Service {
	t.Helper()

	s, err := New(store, 6, 5*time.Minute)
	require.NoError(t, err)

	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(otprepo.NewRepoMem(), 0, time.Minute)
	require.Error(t, err)

	_, err = New(otprepo.NewRepoMem(), 6, 0)
	require.Error(t, err)
}

func TestSend(t *testing.T) {
	t.Parallel()

	store := otprepo.NewRepoMem()
	s := newService(t, store)
	ctx := context.Background()
	mobile := randompkg.MobileNumber()

	require.NoError(t, s.Send(ctx, mobile))

	otp, err := store.Get(ctx, mobile)
	require.NoError(t, err)
	require.Len(t, otp.Code, 6)
	require.Regexp(t, `^[0-9]{6}$`, otp.Code)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), otp.ExpiresAt, time.Second)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		pending     *domain.OTP
		code        string
		wantErr     error
		wantPending bool
	}{
		{
			name:    "Unknown",
			code:    "123456",
			wantErr: domain.ErrInvalidOTP,
		},
		{
			name:    "Match",
			pending: &domain.OTP{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)},
			code:    "123456",
		},
		{
			name:        "Mismatch",
			pending:     &domain.OTP{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)},
			code:        "654321",
			wantErr:     domain.ErrInvalidOTP,
			wantPending: true,
		},
		{
			name:    "Expired",
			pending: &domain.OTP{Code: "123456", ExpiresAt: time.Now().Add(-time.Second)},
			code:    "123456",
			wantErr: domain.ErrInvalidOTP,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := otprepo.NewRepoMem()
			s := newService(t, store)
			ctx := context.Background()
			mobile := randompkg.MobileNumber()

			if tc.pending != nil {
				otp := *tc.pending
				otp.MobileNumber = mobile
				require.NoError(t, store.Save(ctx, otp))
			}

			err := s.Verify(ctx, mobile, tc.code)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			_, err = store.Get(ctx, mobile)
			if tc.wantPending {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, domain.ErrInvalidOTP)
			}
		})
	}
}

func TestVerifyIsSingleUse(t *testing.T) {
	t.Parallel()

	store := otprepo.NewRepoMem()
	s := newService(t, store)
	ctx := context.Background()
	mobile := randompkg.MobileNumber()

	require.NoError(t, s.Send(ctx, mobile))

	otp, err := store.Get(ctx, mobile)
	require.NoError(t, err)

	require.NoError(t, s.Verify(ctx, mobile, otp.Code))
	require.ErrorIs(t, s.Verify(ctx, mobile, otp.Code), domain.ErrInvalidOTP)
}
