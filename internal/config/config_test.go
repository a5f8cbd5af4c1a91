package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gym-booking-service/internal/domain"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[server]
http_port = 9090

[database]
host = "db"
password = "from-file"

[schedule]
open_hour = 7
close_hour = 21
slot_minutes = 60
timezone = "Europe/Berlin"

[redis]
enabled = true
addr = "redis:6379"
`), 0o600)
	require.NoError(t, err)

	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout, "default is kept")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
	assert.Equal(t, 7, cfg.Schedule.OpenHour)
	assert.Equal(t, 60, cfg.Schedule.SlotMinutes)
	assert.Equal(t, domain.DefaultMaxRecurrenceDays, cfg.Schedule.MaxRecurrenceDays)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10, cfg.Redis.LockTTL)

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.DefaultOpenHour, cfg.Schedule.OpenHour)
	assert.Equal(t, domain.DefaultCloseHour, cfg.Schedule.CloseHour)
	assert.Equal(t, domain.DefaultSlotMinutes, cfg.Schedule.SlotMinutes)
	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Redis.Enabled)
}

func TestParse_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "zero slot", data: "[schedule]\nslot_minutes = 0\n"},
		{name: "close before open", data: "[schedule]\nopen_hour = 22\nclose_hour = 6\n"},
		{name: "unknown timezone", data: "[schedule]\ntimezone = \"Mars/Olympus\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse("[schedule]\nslot_minutes = -5\n")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestParse_RedisRequiresAddr(t *testing.T) {
	_, err := Parse("[redis]\nenabled = true\naddr = \"\"\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParse_InvalidPort(t *testing.T) {
	_, err := Parse("[server]\nhttp_port = 70000\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
