// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/sharezin/internal/plan"
)

// devSecret signs tokens when JWT_SECRET is unset. Never use it in production.
const devSecret = "sharezin-dev-secret"

// Config holds every setting the server reads at startup.
type Config struct {
	Port     int
	DBPath   string
	LogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	InviteCodeLength   int
	InviteCodeAttempts int

	Plan plan.Limits

	NotifyBuffer int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}
	cfg := &Config{
		Port:               r.lookupInt("PORT", 8080),
		DBPath:             r.lookup("DB_PATH", "./data/sharezin.db"),
		LogLevel:           r.lookup("LOG_LEVEL", "info"),
		JWTSecret:          r.lookup("JWT_SECRET", ""),
		JWTTTL:             r.lookupDuration("JWT_TTL", 24*time.Hour),
		InviteCodeLength:   r.lookupInt("INVITE_CODE_LENGTH", 6),
		InviteCodeAttempts: r.lookupInt("INVITE_CODE_ATTEMPTS", 5),
		Plan: plan.Limits{
			MaxReceipts:        r.lookupInt("PLAN_MAX_RECEIPTS", 0),
			MaxParticipants:    r.lookupInt("PLAN_MAX_PARTICIPANTS", 0),
			MaxHistoryReceipts: r.lookupInt("PLAN_MAX_HISTORY", 0),
		},
		NotifyBuffer: r.lookupInt("NOTIFY_BUFFER", 64),
	}
	if r.err != nil {
		return nil, r.err
	}

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devSecret
	}
	if cfg.InviteCodeLength <= 0 {
		return nil, fmt.Errorf("INVITE_CODE_LENGTH must be positive, got %d", cfg.InviteCodeLength)
	}
	if cfg.InviteCodeAttempts <= 0 {
		return nil, fmt.Errorf("INVITE_CODE_ATTEMPTS must be positive, got %d", cfg.InviteCodeAttempts)
	}
	if cfg.Plan.MaxReceipts < 0 || cfg.Plan.MaxParticipants < 0 || cfg.Plan.MaxHistoryReceipts < 0 {
		return nil, errors.New("plan limits must not be negative")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) lookup(key, fallback string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return fallback
}

func (r *reader) lookupInt(key string, fallback int) int {
	v := r.getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return fallback
	}
	return n
}

func (r *reader) lookupDuration(key string, fallback time.Duration) time.Duration {
	v := r.getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return fallback
	}
	return d
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
