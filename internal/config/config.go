package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Square   SquareConfig   `koanf:"square"`
	Payments PaymentsConfig `koanf:"payments"`
	Widget   WidgetConfig   `koanf:"widget"`
	Retry    RetryConfig    `koanf:"retry"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// SquareConfig selects the upstream payment API surface. The access token
// and application ID may be empty when payments run in mock mode; live mode
// refuses to start without them.
type SquareConfig struct {
	Environment   string        `koanf:"environment" validate:"required,oneof=sandbox production"`
	AccessToken   string        `koanf:"access_token"`
	ApplicationID string        `koanf:"application_id"`
	Version       string        `koanf:"version" validate:"required"`
	ConnTimeout   time.Duration `koanf:"conn_timeout" validate:"required"`
}

// BaseURL returns the REST API root for the configured environment.
func (c SquareConfig) BaseURL() string {
	if c.Environment == "production" {
		return "https://connect.squareup.com/v2"
	}
	return "https://connect.squareupsandbox.com/v2"
}

// ScriptURL returns the pinned CDN URL of the web payments script.
func (c SquareConfig) ScriptURL() string {
	if c.Environment == "production" {
		return "https://web.squarecdn.com/v1/square.js"
	}
	return "https://sandbox.web.squarecdn.com/v1/square.js"
}

type PaymentsConfig struct {
	Mode      string        `koanf:"mode" validate:"required,oneof=live mock"`
	MockDelay time.Duration `koanf:"mock_delay" validate:"required"`
}

// WidgetConfig bounds the card widget initialization: how long to wait for
// the mount point and how long to let pending UI updates settle before
// attaching.
type WidgetConfig struct {
	MountPollAttempts int           `koanf:"mount_poll_attempts" validate:"required"`
	MountPollInterval time.Duration `koanf:"mount_poll_interval" validate:"required"`
	SettleDelay       time.Duration `koanf:"settle_delay"`
}

type RetryConfig struct {
	BaseDelay  int32 `koanf:"base_delay"`
	MaxRetries int32 `koanf:"max_retries"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

// defaults covers the knobs that have sane values out of the box; required
// operational settings (ports, credentials, database) still come from the
// environment.
var defaults = map[string]any{
	"square.environment":         "sandbox",
	"square.version":             "2023-10-18",
	"square.conn_timeout":        30 * time.Second,
	"payments.mode":              "mock",
	"payments.mock_delay":        2000 * time.Millisecond,
	"widget.mount_poll_attempts": 20,
	"widget.mount_poll_interval": 100 * time.Millisecond,
	"widget.settle_delay":        50 * time.Millisecond,
	"retry.base_delay":           1,
	"retry.max_retries":          3,
	"logger.level":               "info",
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
