package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	APIPort      string        `envconfig:"API_PORT" default:"8080"`
	DatabaseURL  string        `envconfig:"DATABASE_URL"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
