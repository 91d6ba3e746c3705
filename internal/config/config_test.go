package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "./data/sharezin.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, devSecret, cfg.JWTSecret)
	assert.Equal(t, 6, cfg.InviteCodeLength)
	assert.Equal(t, 5, cfg.InviteCodeAttempts)
	assert.Equal(t, 64, cfg.NotifyBuffer)
	assert.Zero(t, cfg.Plan.MaxReceipts)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":                  "9000",
		"DB_PATH":               "/tmp/x.db",
		"JWT_SECRET":            "s3cret",
		"JWT_TTL":               "90m",
		"INVITE_CODE_LENGTH":    "8",
		"PLAN_MAX_RECEIPTS":     "3",
		"PLAN_MAX_PARTICIPANTS": "10",
		"PLAN_MAX_HISTORY":      "20",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 8, cfg.InviteCodeLength)
	assert.Equal(t, 3, cfg.Plan.MaxReceipts)
	assert.Equal(t, 10, cfg.Plan.MaxParticipants)
	assert.Equal(t, 20, cfg.Plan.MaxHistoryReceipts)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"bad ttl", map[string]string{"JWT_TTL": "tomorrow"}},
		{"zero code length", map[string]string{"INVITE_CODE_LENGTH": "0"}},
		{"zero attempts", map[string]string{"INVITE_CODE_ATTEMPTS": "0"}},
		{"negative plan", map[string]string{"PLAN_MAX_RECEIPTS": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PLAN_MAX_HISTORY=7\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("PLAN_MAX_HISTORY", "")
	os.Unsetenv("PLAN_MAX_HISTORY")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Plan.MaxHistoryReceipts)
}
