package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("YIELDSCALE_SERVER_PORT")
		os.Unsetenv("YIELDSCALE_SERVER_ENVIRONMENT")
		os.Unsetenv("YIELDSCALE_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("YIELDSCALE_MEALIE_BASE_URL")
		os.Unsetenv("YIELDSCALE_MEALIE_API_TOKEN")
		os.Unsetenv("YIELDSCALE_CACHE_TYPE")
		os.Unsetenv("YIELDSCALE_CACHE_TTL")
		os.Unsetenv("YIELDSCALE_CACHE_CLEANUP_INTERVAL")
		os.Unsetenv("YIELDSCALE_RATELIMIT_PER_IP")
		os.Unsetenv("YIELDSCALE_RATELIMIT_MEALIE")
		os.Unsetenv("YIELDSCALE_SCALING_DEFAULT_FORMAT")
		os.Unsetenv("YIELDSCALE_SCALING_ENABLE_DEBUG_LOGGING")
		os.Unsetenv("YIELDSCALE_SCALING_MAX_TEXT_LENGTH")
	}

	// Run from an empty directory so no config.yaml or .env is picked up
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Mealie.BaseURL != "" {
			t.Errorf("Mealie.BaseURL = %s, want empty", cfg.Mealie.BaseURL)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Cache.CleanupInterval != 10*time.Minute {
			t.Errorf("Cache.CleanupInterval = %v, want 10m", cfg.Cache.CleanupInterval)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Mealie != 1000 {
			t.Errorf("RateLimit.Mealie = %d, want 1000", cfg.RateLimit.Mealie)
		}
		if cfg.Scaling.DefaultFormat != "markup" {
			t.Errorf("Scaling.DefaultFormat = %s, want markup", cfg.Scaling.DefaultFormat)
		}
		if cfg.Scaling.MaxTextLength != 500 {
			t.Errorf("Scaling.MaxTextLength = %d, want 500", cfg.Scaling.MaxTextLength)
		}
		if cfg.Scaling.EnableDebugLogging {
			t.Error("Scaling.EnableDebugLogging = true, want false")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("YIELDSCALE_SERVER_PORT", "9090")
		os.Setenv("YIELDSCALE_SERVER_ENVIRONMENT", "production")
		os.Setenv("YIELDSCALE_MEALIE_BASE_URL", "https://mealie.example.com")
		os.Setenv("YIELDSCALE_MEALIE_API_TOKEN", "custom-token")
		os.Setenv("YIELDSCALE_CACHE_TTL", "1h")
		os.Setenv("YIELDSCALE_CACHE_CLEANUP_INTERVAL", "30s")
		os.Setenv("YIELDSCALE_RATELIMIT_PER_IP", "200")
		os.Setenv("YIELDSCALE_RATELIMIT_MEALIE", "2000")
		os.Setenv("YIELDSCALE_SCALING_DEFAULT_FORMAT", "plain")
		os.Setenv("YIELDSCALE_SCALING_ENABLE_DEBUG_LOGGING", "true")
		os.Setenv("YIELDSCALE_SCALING_MAX_TEXT_LENGTH", "1000")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Mealie.BaseURL != "https://mealie.example.com" {
			t.Errorf("Mealie.BaseURL = %s, want https://mealie.example.com", cfg.Mealie.BaseURL)
		}
		if cfg.Mealie.APIToken != "custom-token" {
			t.Errorf("Mealie.APIToken = %s, want custom-token", cfg.Mealie.APIToken)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Cache.CleanupInterval != 30*time.Second {
			t.Errorf("Cache.CleanupInterval = %v, want 30s", cfg.Cache.CleanupInterval)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Mealie != 2000 {
			t.Errorf("RateLimit.Mealie = %d, want 2000", cfg.RateLimit.Mealie)
		}
		if cfg.Scaling.DefaultFormat != "plain" {
			t.Errorf("Scaling.DefaultFormat = %s, want plain", cfg.Scaling.DefaultFormat)
		}
		if !cfg.Scaling.EnableDebugLogging {
			t.Error("Scaling.EnableDebugLogging = false, want true")
		}
		if cfg.Scaling.MaxTextLength != 1000 {
			t.Errorf("Scaling.MaxTextLength = %d, want 1000", cfg.Scaling.MaxTextLength)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("YIELDSCALE_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unsupported cache type")
		}
	})

	t.Run("fails validation for unknown default format", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("YIELDSCALE_SCALING_DEFAULT_FORMAT", "html")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unknown format")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2="quoted value"

# Another comment
TEST_VAR_3 = value3
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")
		defer func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
			os.Unsetenv("TEST_VAR_3")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "quoted value" {
			t.Errorf("TEST_VAR_2 = %s, want quoted value", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_VAR_3") != "value3" {
			t.Errorf("TEST_VAR_3 = %s, want value3", os.Getenv("TEST_VAR_3"))
		}
	})

	t.Run("skips empty lines, comments and malformed lines", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		envContent := `
# This is a comment
   # This is also a comment

TEST_SKIP_1=value1
NOT_A_PAIR
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_SKIP_1")
		os.Unsetenv("TEST_COMMENTED")
		os.Unsetenv("NOT_A_PAIR")
		defer os.Unsetenv("TEST_SKIP_1")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_SKIP_1") != "value1" {
			t.Errorf("TEST_SKIP_1 not loaded correctly")
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
		if _, ok := os.LookupEnv("NOT_A_PAIR"); ok {
			t.Errorf("NOT_A_PAIR should not be loaded")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		os.Setenv("TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Cache:     CacheConfig{Type: "memory"},
			RateLimit: RateLimitConfig{PerIP: 60, Mealie: 1000},
			Scaling:   ScalingConfig{DefaultFormat: "markup"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("accepts a Mealie URL", func(t *testing.T) {
		cfg := valid()
		cfg.Mealie.BaseURL = "http://mealie.local:9000"
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid cache type", func(c *Config) { c.Cache.Type = "invalid-type" }},
		{"unknown default format", func(c *Config) { c.Scaling.DefaultFormat = "html" }},
		{"zero per-IP limit", func(c *Config) { c.RateLimit.PerIP = 0 }},
		{"negative Mealie limit", func(c *Config) { c.RateLimit.Mealie = -1 }},
		{"Mealie URL without scheme", func(c *Config) { c.Mealie.BaseURL = "mealie.local" }},
	}

	for _, tt := range tests {
		t.Run("fails for "+tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Error("validate() error = nil, want error")
			}
		})
	}
}
