package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "booking"
password = "secret"
dbname = "inspections"

[logs]
level = "debug"

[booking]
timezone = "Europe/London"
capacity_per_slot = 3
code_ttl_minutes = 15
resend_cooldown_seconds = 60

[admin]
token = "from-file"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 3, cfg.Booking.CapacityPerSlot)
	assert.Equal(t, 15*time.Minute, cfg.Booking.CodeTTL())
	assert.Equal(t, time.Minute, cfg.Booking.ResendCooldown())
	assert.Equal(t, 10, cfg.Booking.BcryptCost)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "from-file", cfg.Admin.Token)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "from-env")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("BOOKING_CAPACITY_PER_SLOT", "4")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Admin.Token)
	assert.Equal(t, 4, cfg.Booking.CapacityPerSlot)
	assert.Equal(t, "postgres://booking:p%40ss%20word@db:5432/inspections?sslmode=disable", cfg.Database.DSN())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 1, cfg.Booking.CapacityPerSlot)
	assert.Equal(t, 10*time.Minute, cfg.Booking.CodeTTL())
	assert.Equal(t, 30*time.Second, cfg.Booking.ResendCooldown())
	assert.Equal(t, "Europe/Prague", cfg.Booking.Timezone)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[server\nhttp_port = 1"},
		{"bad timezone", "[booking]\ntimezone = \"Mars/Olympus\""},
		{"negative capacity", "[booking]\ncapacity_per_slot = -1"},
		{"negative cooldown", "[booking]\nresend_cooldown_seconds = -5"},
		{"rabbitmq without url", "[rabbitmq]\nenabled = true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
