package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 3, cfg.DisplayQuorum)
	require.Equal(t, 2, cfg.ConfirmQuorum)
	require.Equal(t, 90, cfg.WindowDays)
	require.Equal(t, "Europe/Berlin", cfg.Timezone)
	require.NotNil(t, cfg.Storage.SQLite)
	require.NotEmpty(t, cfg.Storage.SQLite.Path)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DISPLAY_QUORUM", "5")
	t.Setenv("CONFIRM_QUORUM", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.DisplayQuorum)
	require.Equal(t, 4, cfg.ConfirmQuorum)
}

func TestLoadConfig_RejectsBadQuorum(t *testing.T) {
	t.Setenv("DISPLAY_QUORUM", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_RejectsBadWindow(t *testing.T) {
	t.Setenv("WINDOW_DAYS", "-1")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_ReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "display_quorum: 4\ncalendar_name: From File\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.DisplayQuorum)
	require.Equal(t, "From File", cfg.CalendarName)

	// Keys the file does not set keep their defaults
	require.Equal(t, 2, cfg.ConfirmQuorum)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	require.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Europe/Berlin"
	require.Equal(t, "Europe/Berlin", cfg.Location().String())
}
