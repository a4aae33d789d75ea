package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "PORTAL"

// DotEnvFiles are read before the environment. Variables already set in the
// environment win over file values.
var DotEnvFiles = []string{".env.local", ".env"}

type Config struct {
	// Server
	HTTPPort       string `envconfig:"HTTP_PORT" default:"8080"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`

	// Auth and sessions. An empty password disables the login gate.
	Password               string        `envconfig:"PASSWORD"`
	LoginAttemptsPerMinute int           `envconfig:"LOGIN_ATTEMPTS_PER_MINUTE" default:"10"`
	SessionBackend         string        `envconfig:"SESSION_BACKEND" default:"memory"`
	SessionTTL             time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SecureCookies          bool          `envconfig:"SECURE_COOKIES" default:"false"`

	// Redis
	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Design backends
	DefaultBackend string `envconfig:"DEFAULT_BACKEND" default:"stub"`
	CLIBinary      string `envconfig:"CLI_BINARY" default:"rfd3"`
	CLIOutDir      string `envconfig:"CLI_OUT_DIR" default:"/tmp/rdf3_out"`
	APIURL         string `envconfig:"API_URL"`
	APIKey         string `envconfig:"API_KEY"`

	// Logging
	LogLevelName string     `envconfig:"LOG_LEVEL" default:"info"`
	LogLevel     slog.Level `ignored:"true"`
	LogFormat    string     `envconfig:"LOG_FORMAT" default:"text"` // "json" or "text"

	// Tracing
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"bioportal"`

	// MQTT progress mirror, disabled when the broker is empty.
	MQTTBroker string `envconfig:"MQTT_BROKER"`
	MQTTPrefix string `envconfig:"MQTT_PREFIX" default:"bioportal"`

	// Features
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	EnableTracing bool `envconfig:"ENABLE_TRACING" default:"false"`
}

func Load() (*Config, error) {
	for _, file := range DotEnvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	cfg.LogLevel = ParseLevel(cfg.LogLevelName)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) AuthEnabled() bool {
	return c.Password != ""
}

func (c *Config) validate() error {
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("%s_SESSION_BACKEND must be memory or redis, got %q", envPrefix, c.SessionBackend)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%s_MAX_UPLOAD_BYTES must be positive", envPrefix)
	}
	if c.LoginAttemptsPerMinute <= 0 {
		return fmt.Errorf("%s_LOGIN_ATTEMPTS_PER_MINUTE must be positive", envPrefix)
	}
	return nil
}

// ParseLevel maps debug, info, warn and error onto slog levels. Anything
// else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
