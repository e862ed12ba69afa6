package otprepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/errorspkg"
)

const keyPrefix = "otp:"

// RepoRedis keeps OTPs in Redis and lets Redis expire them.
type RepoRedis struct {
	rdb *redis.Client
}

// NewRepoRedis returns RepoRedis connected with opts.
func NewRepoRedis(opts RedisOptions) *RepoRedis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &RepoRedis{rdb: rdb}
}

// Ping checks the connection.
func (r *RepoRedis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the client.
func (r *RepoRedis) Close() error {
	return r.rdb.Close()
}

// Save stores the OTP until it expires.
func (r *RepoRedis) Save(ctx context.Context, otp domain.OTP) error {
	l := zerolog.Ctx(ctx)

	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(otp)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := r.rdb.Set(ctx, keyPrefix+otp.MobileNumber, data, ttl).Err(); err != nil {
		l.Error().Err(err).Msg("redis set")
		return errorspkg.ErrInternal
	}

	return nil
}

// Get returns the pending OTP of the mobile number.
func (r *RepoRedis) Get(ctx context.Context, mobileNumber string) (domain.OTP, error) {
	l := zerolog.Ctx(ctx)

	data, err := r.rdb.Get(ctx, keyPrefix+mobileNumber).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.OTP{}, domain.ErrInvalidOTP
		}

		l.Error().Err(err).Msg("redis get")

		return domain.OTP{}, errorspkg.ErrInternal
	}

	var otp domain.OTP
	if err := json.Unmarshal(data, &otp); err != nil {
		l.Error().Err(err).Send()
		return domain.OTP{}, errorspkg.ErrInternal
	}

	return otp, nil
}

// Delete removes the pending OTP of the mobile number.
func (r *RepoRedis) Delete(ctx context.Context, mobileNumber string) error {
	if err := r.rdb.Del(ctx, keyPrefix+mobileNumber).Err(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("redis del")
		return errorspkg.ErrInternal
	}

	return nil
}
