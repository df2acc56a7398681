package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv() {
	os.Unsetenv("LISTEN_ADDR")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("JWT_ISS")
	os.Unsetenv("JWT_AUD")
	os.Unsetenv("JWT_EXPIRY")
	os.Unsetenv("GATEWAY_TIMEOUT")
	os.Unsetenv("CONFIG_FILE")
}

func TestLoad(t *testing.T) {
	clearEnv()

	cfg := Load()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("Expected default LISTEN_ADDR, got %s", cfg.ListenAddr)
	}
	if cfg.JWTSecret != "your-secret-key-change-in-production" {
		t.Errorf("Expected default JWT_SECRET, got %s", cfg.JWTSecret)
	}
	if cfg.JWTIssuer != "asset-management-app" {
		t.Errorf("Expected default JWT_ISS, got %s", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "asset-management-app" {
		t.Errorf("Expected default JWT_AUD, got %s", cfg.JWTAudience)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("Expected default JWT_EXPIRY, got %v", cfg.JWTExpiry)
	}
	if cfg.GatewayTimeout != 10*time.Second {
		t.Errorf("Expected default GATEWAY_TIMEOUT, got %v", cfg.GatewayTimeout)
	}
}

func TestLoadWithEnvironment(t *testing.T) {
	clearEnv()
	os.Setenv("LISTEN_ADDR", ":9090")
	os.Setenv("JWT_SECRET", "test-secret-key")
	os.Setenv("JWT_ISS", "test-issuer")
	os.Setenv("JWT_AUD", "test-audience")
	os.Setenv("JWT_EXPIRY", "2h")
	os.Setenv("GATEWAY_TIMEOUT", "3s")
	defer clearEnv()

	cfg := Load()

	if cfg.ListenAddr != ":9090" {
		t.Errorf("Expected LISTEN_ADDR from env, got %s", cfg.ListenAddr)
	}
	if cfg.JWTSecret != "test-secret-key" {
		t.Errorf("Expected JWT_SECRET from env, got %s", cfg.JWTSecret)
	}
	if cfg.JWTIssuer != "test-issuer" {
		t.Errorf("Expected JWT_ISS from env, got %s", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "test-audience" {
		t.Errorf("Expected JWT_AUD from env, got %s", cfg.JWTAudience)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("Expected JWT_EXPIRY from env, got %v", cfg.JWTExpiry)
	}
	if cfg.GatewayTimeout != 3*time.Second {
		t.Errorf("Expected GATEWAY_TIMEOUT from env, got %v", cfg.GatewayTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ListenAddr:     ":8080",
			JWTSecret:      "valid-secret-that-is-long-enough-for-testing",
			JWTIssuer:      "test-issuer",
			JWTAudience:    "test-audience",
			JWTExpiry:      time.Hour,
			GatewayTimeout: time.Second,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }, true},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"secret too short", func(c *Config) { c.JWTSecret = "short" }, true},
		{"empty issuer", func(c *Config) { c.JWTIssuer = "" }, true},
		{"empty audience", func(c *Config) { c.JWTAudience = "" }, true},
		{"negative expiry", func(c *Config) { c.JWTExpiry = -time.Hour }, true},
		{"zero gateway timeout", func(c *Config) { c.GatewayTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	clearEnv()
	os.Setenv("JWT_SECRET", "valid-secret-that-is-long-enough-for-testing")
	defer clearEnv()

	cfg, err := LoadAndValidate()
	if err != nil {
		t.Errorf("LoadAndValidate() failed with valid config: %v", err)
	}
	if cfg == nil {
		t.Error("LoadAndValidate() returned nil config with valid config")
	}

	os.Setenv("JWT_SECRET", "short")
	_, err = LoadAndValidate()
	if err == nil {
		t.Error("LoadAndValidate() should fail with invalid config")
	}
}

func TestLoadAndValidateWithFileOverlay(t *testing.T) {
	clearEnv()
	defer clearEnv()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("listen_addr: \":7070\"\njwt_secret: overlay-secret-that-is-long-enough-yes\njwt_expiry: 1h\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	os.Setenv("CONFIG_FILE", path)

	cfg, err := LoadAndValidate()
	if err != nil {
		t.Fatalf("LoadAndValidate() with overlay failed: %v", err)
	}

	if cfg.ListenAddr != ":7070" {
		t.Errorf("Expected overlay listen addr, got %s", cfg.ListenAddr)
	}
	if cfg.JWTSecret != "overlay-secret-that-is-long-enough-yes" {
		t.Errorf("Expected overlay secret, got %s", cfg.JWTSecret)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("Expected overlay expiry, got %v", cfg.JWTExpiry)
	}
	// untouched fields keep their defaults
	if cfg.JWTIssuer != "asset-management-app" {
		t.Errorf("Expected default issuer, got %s", cfg.JWTIssuer)
	}
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	clearEnv()
	defer clearEnv()
	os.Setenv("CONFIG_FILE", "/does/not/exist.yaml")

	if _, err := LoadAndValidate(); err == nil {
		t.Error("LoadAndValidate() should fail when CONFIG_FILE is missing")
	}
}
