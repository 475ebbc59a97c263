package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds the settings for API bearer tokens. Tokens are issued by
// operator tooling; the API routes only verify them.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS
// (default 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours := 24
	if s := os.Getenv("JWT_EXPIRATION_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be a positive integer, got %q", s)
		}
		hours = v
	}

	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}
