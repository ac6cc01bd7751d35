package jwtmw

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpire is the environment variable holding the token time-to-live.
	EnvKeyJWTExpire = "JWT_EXPIRE"

	// DefaultTTL is used when JWT_EXPIRE is unset.
	DefaultTTL = 24 * time.Hour
)

// ErrMissingSecret is returned when JWT_SECRET is empty.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Config holds the process-wide token settings. It is read once at startup.
type Config struct {
	Secret string
	TTL    time.Duration
}

// LoadConfigFromEnv reads JWT_SECRET and JWT_EXPIRE.
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		Secret: os.Getenv(EnvKeyJWTSecret),
		TTL:    DefaultTTL,
	}
	if cfg.Secret == "" {
		return cfg, ErrMissingSecret
	}
	if v := os.Getenv(EnvKeyJWTExpire); v != "" {
		ttl, err := ParseTTL(v)
		if err != nil {
			return cfg, err
		}
		cfg.TTL = ttl
	}
	return cfg, nil
}

// ParseTTL accepts Go durations ("90m", "12h"), a day suffix ("30d") or a bare
// number of seconds ("3600").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid %s: empty value", EnvKeyJWTExpire)
	}

	var ttl time.Duration
	switch {
	case strings.HasSuffix(s, "d"):
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", EnvKeyJWTExpire, s, err)
		}
		ttl = time.Duration(days) * 24 * time.Hour
	default:
		if secs, err := strconv.Atoi(s); err == nil {
			ttl = time.Duration(secs) * time.Second
			break
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", EnvKeyJWTExpire, s, err)
		}
		ttl = d
	}

	if ttl <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", EnvKeyJWTExpire, s)
	}
	return ttl, nil
}
