// ABOUTME: Process configuration read once from the environment at startup.
// ABOUTME: Decides whether the backend read and write paths are enabled.

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DatabaseURL    string `env:"LIBDIR_DATABASE_URL"`
	AnonKey        string `env:"LIBDIR_ANON_KEY"`
	ServiceRoleKey string `env:"LIBDIR_SERVICE_ROLE_KEY"`
	ReadRole       string `env:"LIBDIR_READ_ROLE" envDefault:"anon"`
	WriteRole      string `env:"LIBDIR_WRITE_ROLE" envDefault:"service_role"`
	HTTPAddr       string `env:"LIBDIR_HTTP_ADDR" envDefault:":3000"`
	LogLevel       string `env:"LIBDIR_LOG_LEVEL" envDefault:"info"`
}

// Credentials pair a database role with the key that authenticates it.
type Credentials struct {
	Role string
	Key  string
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.AnonKey = strings.TrimSpace(cfg.AnonKey)
	cfg.ServiceRoleKey = strings.TrimSpace(cfg.ServiceRoleKey)
	return cfg, nil
}

// ReadEnabled reports whether listing queries may reach the backend.
func (c Config) ReadEnabled() bool {
	return c.DatabaseURL != "" && c.AnonKey != ""
}

// WriteEnabled reports whether submissions may reach the backend.
func (c Config) WriteEnabled() bool {
	return c.DatabaseURL != "" && (c.AnonKey != "" || c.ServiceRoleKey != "")
}

func (c Config) ReadCredentials() Credentials {
	return Credentials{Role: c.ReadRole, Key: c.AnonKey}
}

// WriteCredentials prefers the service role key and falls back to the anon key.
func (c Config) WriteCredentials() Credentials {
	if c.ServiceRoleKey != "" {
		return Credentials{Role: c.WriteRole, Key: c.ServiceRoleKey}
	}
	return c.ReadCredentials()
}

func (c Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
