// Package config loads settings shared by the moonglow CLI and HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the complete moonglow configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Watch  WatchConfig  `yaml:"watch"`
	Output OutputConfig `yaml:"output"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port               int      `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	// MaxEventRangeDays bounds /v1/moon/events queries.
	MaxEventRangeDays int `yaml:"max_event_range_days"`
}

// WatchConfig contains settings for the scheduled illumination log.
type WatchConfig struct {
	Schedule string `yaml:"schedule"` // standard 5-field cron expression
	Timezone string `yaml:"timezone"` // IANA name used for log timestamps
}

// OutputConfig controls the format of the watch log lines.
type OutputConfig struct {
	JSON bool `yaml:"json"`
}

const (
	DefaultPort              = 8080
	DefaultMaxEventRangeDays = 366
	DefaultSchedule          = "0 * * * *"
	DefaultTimezone          = "UTC"
)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file, applies defaults and then environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %q: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxEventRangeDays == 0 {
		c.Server.MaxEventRangeDays = DefaultMaxEventRangeDays
	}
	if strings.TrimSpace(c.Watch.Schedule) == "" {
		c.Watch.Schedule = DefaultSchedule
	}
	if strings.TrimSpace(c.Watch.Timezone) == "" {
		c.Watch.Timezone = DefaultTimezone
	}
}

// applyEnv overrides file values with PORT, CORS_ALLOWED_ORIGINS,
// MOONGLOW_SCHEDULE and MOONGLOW_TZ when they are set.
func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSAllowedOrigins = origins
	}
	if v := os.Getenv("MOONGLOW_SCHEDULE"); v != "" {
		c.Watch.Schedule = v
	}
	if v := os.Getenv("MOONGLOW_TZ"); v != "" {
		c.Watch.Timezone = v
	}
	return nil
}

// Validate checks ranges, the cron expression and the time zone name.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxEventRangeDays < 1 {
		errs = append(errs, fmt.Errorf("server.max_event_range_days must be positive, got %d", c.Server.MaxEventRangeDays))
	}
	if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("watch.schedule %q: %w", c.Watch.Schedule, err))
	}
	if _, err := time.LoadLocation(c.Watch.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("watch.timezone %q: %w", c.Watch.Timezone, err))
	}

	return errors.Join(errs...)
}

// Location resolves Watch.Timezone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Watch.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
