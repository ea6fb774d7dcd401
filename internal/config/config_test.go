package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwatch/railwatch/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "https://huxley2.azurewebsites.net", cfg.Fetch.BaseURL)
	assert.Equal(t, "10s", cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.MaxServices)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 15*time.Minute, cfg.LockStaleAfter())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
alerts:
  telegram:
    enabled: true
    token: "bot-token"
    chat_id: "1234"
storage:
  backend: sqlite
  path: /tmp/railwatch-test.db
logging:
  level: debug
trips:
  - name: Morning Commute
    from: BCE
    to: WAT
    days: [Monday, Tuesday, Wednesday, Thursday, Friday]
    time_start: "07:00"
    time_end: "09:30"
    criteria:
      notify_platform: true
      delay_threshold_minutes: 10
`)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.True(t, cfg.Alerts.Telegram.Enabled)
	assert.Equal(t, "bot-token", cfg.Alerts.Telegram.Token)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)

	trips, err := cfg.TripModels()
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, "Morning Commute", trip.Name)
	assert.Equal(t, "BCE", trip.From)
	assert.Equal(t, "WAT", trip.To)
	assert.Equal(t, "07:00-09:30", trip.Window.String())
	assert.True(t, trip.Criteria.NotifyCancelled, "defaults on when unset")
	assert.True(t, trip.Criteria.NotifyDelayed)
	assert.True(t, trip.Criteria.NotifyPlatform)
	assert.Equal(t, 10*time.Minute, trip.Criteria.DelayThreshold)
}

func TestLoad_CriteriaDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
trips:
  - name: Bare Trip
    from: BCE
    to: WAT
    days: [Monday]
    time_start: "07:00"
    time_end: "09:30"
`)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	trips, err := cfg.TripModels()
	require.NoError(t, err)
	require.Len(t, trips, 1)

	criteria := trips[0].Criteria
	assert.True(t, criteria.NotifyCancelled)
	assert.True(t, criteria.NotifyDelayed)
	assert.False(t, criteria.NotifyPlatform)
	assert.Equal(t, 5*time.Minute, criteria.DelayThreshold)
}

func TestLoad_WindowWrapsMidnight(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
trips:
  - name: Night Owl
    from: BCE
    to: WAT
    days: [Friday]
    time_start: "23:00"
    time_end: "01:00"
`)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	_, err := config.Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wraps midnight")
}

func TestLoad_InvalidTrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
trips:
  - name: Bad Route
    from: BRENTFORD
    to: WAT
    time_start: "07:00"
    time_end: "09:30"
`)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	_, err := config.Load(cfgPath)
	assert.Error(t, err, "origin must be a three-letter CRS code")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RAILWATCH_LOGGING_LEVEL", "error")
	t.Setenv("RAILWATCH_FETCH_TIMEOUT", "3s")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("invalid: [yaml"), 0o644))

	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}
