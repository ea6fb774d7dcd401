package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/railwatch/railwatch/pkg/model"
)

// Config holds all railwatch configuration.
type Config struct {
	Trips    []Trip         `mapstructure:"trips" validate:"dive"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Stations StationsConfig `mapstructure:"stations"`
	Lock     LockConfig     `mapstructure:"lock"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Trip is one monitored route as written in the config file.
type Trip struct {
	Name      string   `mapstructure:"name" validate:"required"`
	From      string   `mapstructure:"from" validate:"required,len=3,alpha"`
	To        string   `mapstructure:"to" validate:"required,len=3,alpha"`
	Days      []string `mapstructure:"days"`
	TimeStart string   `mapstructure:"time_start" validate:"required"`
	TimeEnd   string   `mapstructure:"time_end" validate:"required"`
	Criteria  Criteria `mapstructure:"criteria"`
}

// Criteria selects which conditions alert. Unset booleans default to the
// historical behavior: cancellations and delays on, platform changes off.
type Criteria struct {
	NotifyCancelled       *bool `mapstructure:"notify_cancelled"`
	NotifyDelayed         *bool `mapstructure:"notify_delayed"`
	NotifyPlatform        *bool `mapstructure:"notify_platform"`
	DelayThresholdMinutes *int  `mapstructure:"delay_threshold_minutes"`
}

// AlertsConfig defines delivery integrations.
type AlertsConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
}

// TelegramConfig defines Telegram Bot API settings.
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	ChatID  string `mapstructure:"chat_id"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Secret  string `mapstructure:"secret"`
}

// StorageConfig defines the notification state store.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite"`
	Path    string `mapstructure:"path"`
}

// FetchConfig defines the departures API settings.
type FetchConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Timeout     string `mapstructure:"timeout"`
	MaxServices int    `mapstructure:"max_services"`
}

// StationsConfig points at the optional CRS-to-name reference file.
type StationsConfig struct {
	Path string `mapstructure:"path"`
}

// LockConfig defines the cycle lock file.
type LockConfig struct {
	Path       string `mapstructure:"path"`
	StaleAfter string `mapstructure:"stale_after"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. Inability to
// load or validate configuration is the only fatal error in a cycle.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".railwatch"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", filepath.Join(home, ".railwatch", "state.json"))
	v.SetDefault("fetch.base_url", "https://huxley2.azurewebsites.net")
	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("fetch.max_services", 3)
	v.SetDefault("lock.path", filepath.Join(home, ".railwatch", "cycle.lock"))
	v.SetDefault("lock.stale_after", "15m")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Environment variables
	v.SetEnvPrefix("RAILWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	for _, trip := range cfg.Trips {
		if _, err := trip.ToModel(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// ToModel converts a config trip into the core trip record, parsing the time
// window and applying criteria defaults. The window must not wrap midnight.
func (t Trip) ToModel() (model.TripConfig, error) {
	start, err := model.ParseClockMinute(t.TimeStart)
	if err != nil {
		return model.TripConfig{}, fmt.Errorf("trip %q: %w", t.Name, err)
	}
	end, err := model.ParseClockMinute(t.TimeEnd)
	if err != nil {
		return model.TripConfig{}, fmt.Errorf("trip %q: %w", t.Name, err)
	}
	if start > end {
		return model.TripConfig{}, fmt.Errorf("trip %q: time window %s-%s wraps midnight", t.Name, t.TimeStart, t.TimeEnd)
	}

	return model.TripConfig{
		Name:   t.Name,
		From:   strings.ToUpper(t.From),
		To:     strings.ToUpper(t.To),
		Days:   t.Days,
		Window: model.Window{Start: start, End: end},
		Criteria: model.NotificationCriteria{
			NotifyCancelled: boolOr(t.Criteria.NotifyCancelled, true),
			NotifyDelayed:   boolOr(t.Criteria.NotifyDelayed, true),
			NotifyPlatform:  boolOr(t.Criteria.NotifyPlatform, false),
			DelayThreshold:  time.Duration(intOr(t.Criteria.DelayThresholdMinutes, 5)) * time.Minute,
		},
	}, nil
}

// TripModels converts all configured trips, preserving config order.
func (c *Config) TripModels() ([]model.TripConfig, error) {
	trips := make([]model.TripConfig, 0, len(c.Trips))
	for _, t := range c.Trips {
		m, err := t.ToModel()
		if err != nil {
			return nil, err
		}
		trips = append(trips, m)
	}
	return trips, nil
}

// FetchTimeout returns the parsed fetch timeout, falling back to 10s.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// LockStaleAfter returns the parsed stale-lock age, falling back to 15m.
func (c *Config) LockStaleAfter() time.Duration {
	d, err := time.ParseDuration(c.Lock.StaleAfter)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
