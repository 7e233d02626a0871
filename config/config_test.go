package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("CLUB_TIMEZONE", "UTC")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, time.UTC, cfg.ClubLocation)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "club")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "courts")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("CLUB_TIMEZONE", "Nowhere/Atlantis")

	cfg := Load()

	assert.Equal(t, "host=db port=5433 user=club password=secret dbname=courts sslmode=disable", cfg.DSN())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, time.UTC, cfg.ClubLocation)
}
