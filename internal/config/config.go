// Package config loads Diagnify settings from defaults, an optional YAML
// file, a .env file and DIAGNIFY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/IT-FEST-2025/diagnify/internal/history"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	History   HistoryConfig   `yaml:"history"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Advice    AdviceConfig    `yaml:"advice"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type HistoryConfig struct {
	Driver   string `yaml:"driver" validate:"oneof=memory file sqlite postgres"`
	Path     string `yaml:"path" validate:"required_if=Driver file"`
	DSN      string `yaml:"dsn"`
	Capacity int    `yaml:"capacity" validate:"gte=1,lte=366"`
}

type AnalyticsConfig struct {
	URL     string        `yaml:"url" validate:"omitempty,url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type AdviceConfig struct {
	Catalog string `yaml:"catalog" validate:"required"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		History: HistoryConfig{
			Driver:   "memory",
			Capacity: history.DefaultCapacity,
		},
		Analytics: AnalyticsConfig{
			Timeout: 10 * time.Second,
		},
		Advice: AdviceConfig{Catalog: "en"},
		Log:    LogConfig{Level: "info"},
	}
}

// HistoryOptions converts the history section for history.Open.
func (c *Config) HistoryOptions() history.Options {
	return history.Options{
		Driver:   c.History.Driver,
		Path:     c.History.Path,
		DSN:      c.History.DSN,
		Capacity: c.History.Capacity,
	}
}

// Load builds the configuration. path may be empty to skip the YAML file.
// A missing .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and cross-field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	if (cfg.History.Driver == "sqlite" || cfg.History.Driver == "postgres") && cfg.History.DSN == "" {
		return fmt.Errorf("invalid configuration: history.dsn is required for driver %s", cfg.History.Driver)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}

// env variable -> setter
var envOverrides = map[string]func(*Config, string) error{
	"DIAGNIFY_ADDR":              func(c *Config, v string) error { c.Server.Addr = v; return nil },
	"DIAGNIFY_READ_TIMEOUT":      durationVar(func(c *Config) *time.Duration { return &c.Server.ReadTimeout }),
	"DIAGNIFY_SHUTDOWN_TIMEOUT":  durationVar(func(c *Config) *time.Duration { return &c.Server.ShutdownTimeout }),
	"DIAGNIFY_HISTORY_DRIVER":    func(c *Config, v string) error { c.History.Driver = v; return nil },
	"DIAGNIFY_HISTORY_PATH":      func(c *Config, v string) error { c.History.Path = v; return nil },
	"DIAGNIFY_HISTORY_DSN":       func(c *Config, v string) error { c.History.DSN = v; return nil },
	"DIAGNIFY_HISTORY_CAPACITY":  intVar(func(c *Config) *int { return &c.History.Capacity }),
	"DIAGNIFY_ANALYTICS_URL":     func(c *Config, v string) error { c.Analytics.URL = v; return nil },
	"DIAGNIFY_ANALYTICS_TOKEN":   func(c *Config, v string) error { c.Analytics.Token = v; return nil },
	"DIAGNIFY_ANALYTICS_TIMEOUT": durationVar(func(c *Config) *time.Duration { return &c.Analytics.Timeout }),
	"DIAGNIFY_CATALOG":           func(c *Config, v string) error { c.Advice.Catalog = v; return nil },
	"DIAGNIFY_LOG_LEVEL":         func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil },
	"DIAGNIFY_LOG_DEVELOPMENT":   boolVar(func(c *Config) *bool { return &c.Log.Development }),
}

func applyEnv(cfg *Config) error {
	for name, set := range envOverrides {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func durationVar(field func(*Config) *time.Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}

func intVar(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolVar(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}
