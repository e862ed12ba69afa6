// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	Environement         string        `mapstructure:"GO_ENV"`
	TokenType            string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	CORSAllowedOrigins   []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	DefaultBalance       string        `mapstructure:"DEFAULT_BALANCE"`
	BillSeedCount        int           `mapstructure:"BILL_SEED_COUNT"`
	OTPStore             string        `mapstructure:"OTP_STORE"`
	OTPLength            int           `mapstructure:"OTP_LENGTH"`
	OTPTTL               time.Duration `mapstructure:"OTP_TTL"`
	RedisAddress         string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int           `mapstructure:"REDIS_DB"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8000")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("TOKEN_TYPE", "paseto")
	v.SetDefault("ACCESS_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DEFAULT_BALANCE", "1000.00")
	v.SetDefault("BILL_SEED_COUNT", 9)
	v.SetDefault("OTP_STORE", "memory")
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_TTL", 5*time.Minute)
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
