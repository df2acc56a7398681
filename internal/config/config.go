package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup. Values come from the
// environment, optionally overridden by a YAML file named in CONFIG_FILE.
type Config struct {
	ListenAddr     string
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	JWTExpiry      time.Duration
	GatewayTimeout time.Duration
}

// fileConfig mirrors Config for the YAML overlay. Durations are strings in
// Go duration syntax ("2h", "30s").
type fileConfig struct {
	ListenAddr     string `yaml:"listen_addr"`
	JWTSecret      string `yaml:"jwt_secret"`
	JWTIssuer      string `yaml:"jwt_issuer"`
	JWTAudience    string `yaml:"jwt_audience"`
	JWTExpiry      string `yaml:"jwt_expiry"`
	GatewayTimeout string `yaml:"gateway_timeout"`
}

// Load builds a Config from the environment with defaults.
func Load() *Config {
	config := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTIssuer:      getEnv("JWT_ISS", "asset-management-app"),
		JWTAudience:    getEnv("JWT_AUD", "asset-management-app"),
		JWTExpiry:      24 * time.Hour,
		GatewayTimeout: 10 * time.Second,
	}

	if expiryStr := os.Getenv("JWT_EXPIRY"); expiryStr != "" {
		if expiry, err := time.ParseDuration(expiryStr); err == nil {
			config.JWTExpiry = expiry
		}
	}
	if timeoutStr := os.Getenv("GATEWAY_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.GatewayTimeout = timeout
		}
	}

	return config
}

// LoadAndValidate loads the config, applies the optional YAML overlay and
// validates the result.
func LoadAndValidate() (*Config, error) {
	cfg := Load()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays non-zero values from a YAML file onto the config.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var overlay fileConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}

	if overlay.ListenAddr != "" {
		c.ListenAddr = overlay.ListenAddr
	}
	if overlay.JWTSecret != "" {
		c.JWTSecret = overlay.JWTSecret
	}
	if overlay.JWTIssuer != "" {
		c.JWTIssuer = overlay.JWTIssuer
	}
	if overlay.JWTAudience != "" {
		c.JWTAudience = overlay.JWTAudience
	}
	if overlay.JWTExpiry != "" {
		expiry, err := time.ParseDuration(overlay.JWTExpiry)
		if err != nil {
			return fmt.Errorf("jwt_expiry: %w", err)
		}
		c.JWTExpiry = expiry
	}
	if overlay.GatewayTimeout != "" {
		timeout, err := time.ParseDuration(overlay.GatewayTimeout)
		if err != nil {
			return fmt.Errorf("gateway_timeout: %w", err)
		}
		c.GatewayTimeout = timeout
	}
	return nil
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address must not be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT secret must not be empty")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT secret must be at least 32 characters")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT issuer must not be empty")
	}
	if c.JWTAudience == "" {
		return errors.New("JWT audience must not be empty")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT expiry must be positive")
	}
	if c.GatewayTimeout <= 0 {
		return errors.New("gateway timeout must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
