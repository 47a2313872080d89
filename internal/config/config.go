// Package config loads service and client settings from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL         string `mapstructure:"TRIAGE_BASE_URL"`
	Addr            string `mapstructure:"ADDR"`
	Port            string `mapstructure:"PORT"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	Env             string `mapstructure:"ENV"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	HTTPTimeoutSecs int    `mapstructure:"HTTP_TIMEOUT_SECS"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("TRIAGE_BASE_URL", "http://localhost:8000")
	v.SetDefault("ADDR", "127.0.0.1")
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT_SECS", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("TRIAGE_BASE_URL")
	v.BindEnv("ADDR")
	v.BindEnv("PORT")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("HTTP_TIMEOUT_SECS")

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the process runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ListenAddr is the host:port the assessment service binds.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Addr, c.Port)
}
