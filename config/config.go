// Package config manages application configuration.
package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Config holds client configuration loaded from the environment.
type Config struct {
	// AppEnv selects runtime behavior ("dev" enables debug logging).
	AppEnv string `envconfig:"VIDEOTUBE_ENV" default:"dev"`

	// BaseURL is the backend API root, including the version prefix.
	BaseURL string `envconfig:"VIDEOTUBE_BASE_URL" default:"http://localhost:8000/api/v1"`

	// Timeout applies to individual HTTP requests.
	Timeout time.Duration `envconfig:"VIDEOTUBE_TIMEOUT" default:"30s"`

	// RequestsPerSecond caps outbound request rate (0 disables the limiter).
	RequestsPerSecond float64 `envconfig:"VIDEOTUBE_RPS" default:"10"`

	// Burst is the token bucket burst size for the rate limiter.
	Burst int `envconfig:"VIDEOTUBE_BURST" default:"20"`

	// UserAgent is sent on every request.
	UserAgent string `envconfig:"VIDEOTUBE_USER_AGENT" default:"videotube/1.0"`

	// CookieFile stores session cookies between runs ("" disables
	// persistence; the session then lives only as long as the process).
	CookieFile string `envconfig:"VIDEOTUBE_COOKIE_FILE" default:".videotube-cookies.json"`
}

// Load reads configuration from VIDEOTUBE_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger returns a zerolog logger configured for the given environment.
func NewLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "dev" {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
}
