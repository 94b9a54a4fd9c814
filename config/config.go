package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Mealie    MealieConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Scaling   ScalingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MealieConfig holds recipe server configuration.
// An empty BaseURL disables the recipe endpoints.
type MealieConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIToken string `mapstructure:"api_token"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // only "memory"
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP  int `mapstructure:"per_ip"` // requests per minute
	Mealie int `mapstructure:"mealie"` // requests per hour
}

// ScalingConfig holds yield scaling configuration
type ScalingConfig struct {
	DefaultFormat      string `mapstructure:"default_format"`
	EnableDebugLogging bool   `mapstructure:"enable_debug_logging"`
	MaxTextLength      int    `mapstructure:"max_text_length"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/yieldscale/")

	// YIELDSCALE_SERVER_PORT -> server.port
	v.SetEnvPrefix("YIELDSCALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Mealie defaults
	v.SetDefault("mealie.base_url", "")
	v.SetDefault("mealie.api_token", "")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.mealie", 1000)

	// Scaling defaults
	v.SetDefault("scaling.default_format", "markup")
	v.SetDefault("scaling.enable_debug_logging", false)
	v.SetDefault("scaling.max_text_length", 500)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Scaling.DefaultFormat != "markup" && config.Scaling.DefaultFormat != "plain" {
		return fmt.Errorf("scaling default format must be 'markup' or 'plain', got: %s", config.Scaling.DefaultFormat)
	}

	if config.RateLimit.PerIP <= 0 {
		return errors.New("per-IP rate limit must be positive")
	}

	if config.RateLimit.Mealie <= 0 {
		return errors.New("Mealie rate limit must be positive")
	}

	if config.Mealie.BaseURL != "" &&
		!strings.HasPrefix(config.Mealie.BaseURL, "http://") &&
		!strings.HasPrefix(config.Mealie.BaseURL, "https://") {
		return fmt.Errorf("Mealie base URL must start with http:// or https://, got: %s", config.Mealie.BaseURL)
	}

	return nil
}

// loadEnvFile reads KEY=VALUE pairs from ./.env into the environment.
// A missing file is not an error and existing variables are never overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}

	return scanner.Err()
}
