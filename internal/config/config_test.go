package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapacityBands(t *testing.T) {
	bands, err := ParseCapacityBands(" 10:10, 2:4 ,6:6")
	require.NoError(t, err)
	assert.Equal(t, []CapacityBand{
		{MaxGroupSize: 2, MaxCapacity: 4},
		{MaxGroupSize: 6, MaxCapacity: 6},
		{MaxGroupSize: 10, MaxCapacity: 10},
	}, bands)

	for _, raw := range []string{"2", "x:4", "4:2", "0:3"} {
		_, err := ParseCapacityBands(raw)
		assert.Error(t, err, raw)
	}

	bands, err = ParseCapacityBands("")
	require.NoError(t, err)
	assert.Empty(t, bands)
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("12, 34,,56 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 34, 56}, ids)

	_, err = ParseIDList("12,abc")
	assert.Error(t, err)
}

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://localhost/admin_bot")
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("TIMEZONE", "UTC")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_TELEGRAM_IDS", "1001,1002")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 300*time.Millisecond, cfg.ParticipantDebounce)
	assert.Equal(t, int64(3), cfg.OnlineBranchID)
	assert.Equal(t, 20, cfg.DigestHour)
	assert.Len(t, cfg.RoomCapacityBands, 3)
	assert.True(t, cfg.IsBootstrapAdmin(1002))
	assert.False(t, cfg.IsBootstrapAdmin(7))
	assert.False(t, cfg.UseWebhook())
}

func TestLoadValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_BASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "API_BASE_URL")

	setRequiredEnv(t)
	t.Setenv("DIGEST_HOUR", "25")
	_, err = Load()
	assert.ErrorContains(t, err, "DIGEST_HOUR")

	t.Setenv("DIGEST_HOUR", "8")
	t.Setenv("API_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "API_TIMEOUT")
}
