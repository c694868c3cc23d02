package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Binaergewitter/datefinder/internal/hooks"
)

// Config is assembled once at startup and passed explicitly to each
// component. Nothing in the core reads environment variables directly.
type Config struct {
	// Secret key for signing auth tokens. Must be set in production.
	Secret string `mapstructure:"secret"`

	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`

	// User authentication TTL in days.
	UserAuthTTL uint `mapstructure:"user_auth_ttl"`

	// DisplayQuorum is the number of entries a date needs to get the star
	// marker in the calendar view.
	DisplayQuorum int `mapstructure:"display_quorum"`
	// ConfirmQuorum is the number of entries a date needs before it may be
	// confirmed. Deliberately lower than DisplayQuorum.
	ConfirmQuorum int `mapstructure:"confirm_quorum"`

	// WindowDays is the size of the forward availability window in days.
	WindowDays int `mapstructure:"window_days"`

	// Timezone for "today" boundaries and calendar export timestamps.
	Timezone string `mapstructure:"timezone"`

	CalendarName   string `mapstructure:"calendar_name"`
	ICalExportPath string `mapstructure:"ical_export_path"`

	// Comma separated list of notification recipients. Empty disables the
	// email hook.
	NotifyEmails string `mapstructure:"notify_emails"`

	Storage Storage `mapstructure:"storage"`

	// SMTP settings for the email notification hook.
	Email hooks.SMTPConfig `mapstructure:"email"`
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("Invalid timezone, falling back to UTC", "timezone", c.Timezone)
		return time.UTC
	}
	return loc
}

// LoadConfig reads configuration from an optional config file and the
// environment and returns an immutable Config struct.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath("./instance")
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// A config file is optional; a broken or missing explicit one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if cfg.DisplayQuorum < 1 || cfg.ConfirmQuorum < 1 {
		return nil, fmt.Errorf("quorum thresholds must be positive (display=%d confirm=%d)", cfg.DisplayQuorum, cfg.ConfirmQuorum)
	}

	if cfg.WindowDays < 1 {
		return nil, fmt.Errorf("window_days must be positive: %d", cfg.WindowDays)
	}

	// Warn if secret is missing - this is a critical security setting for production
	if cfg.Secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("SECRET configuration variable is required in production")
		} else {
			slog.Warn("Secret is not set. Do not use in production.")
		}
	}

	return &cfg, nil
}
