// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// RedisConfig holds Redis connection details. An empty address disables Redis
// entirely; the service falls back to in-memory history and no rate limiting.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// MarketplaceConfig holds configuration for the external listings/orders API
// that confirmed voice commands are dispatched to.
type MarketplaceConfig struct {
	// BaseURL is the root of the marketplace API (e.g. https://api.example.com)
	BaseURL string `mapstructure:"BASE_URL" yaml:"base_url"`
	// APIKey authenticates outbound create calls
	APIKey string `mapstructure:"API_KEY" yaml:"api_key"`
	// TimeoutSeconds is the HTTP client timeout for marketplace requests
	TimeoutSeconds int `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// RateLimitConfig holds configuration for rate limiting the voice endpoints.
type RateLimitConfig struct {
	// Maximum voice requests per window per client IP
	RequestsPerMinute int `mapstructure:"REQUESTS_PER_MINUTE" yaml:"requests_per_minute"`
	// Window duration in seconds for rate limiting
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// VoiceConfig holds voice-pipeline defaults.
type VoiceConfig struct {
	// DefaultLanguage is assumed when the caller omits a language tag
	DefaultLanguage string `mapstructure:"DEFAULT_LANGUAGE" yaml:"default_language"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server      ServerConfig      `mapstructure:"SERVER" yaml:"server"`
	Redis       RedisConfig       `mapstructure:"REDIS" yaml:"redis"`
	Marketplace MarketplaceConfig `mapstructure:"MARKETPLACE" yaml:"marketplace"`
	RateLimit   RateLimitConfig   `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Voice       VoiceConfig       `mapstructure:"VOICE" yaml:"voice"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("REDIS.ADDRESS", "")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("MARKETPLACE.BASE_URL", "http://localhost:3000/api")
	v.SetDefault("MARKETPLACE.API_KEY", "")
	v.SetDefault("MARKETPLACE.TIMEOUT_SECONDS", 10)
	v.SetDefault("RATE_LIMIT.REQUESTS_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("VOICE.DEFAULT_LANGUAGE", "hi-IN")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Marketplace config
		{"MARKETPLACE.BASE_URL", "MARKETPLACE_BASE_URL"},
		{"MARKETPLACE.API_KEY", "MARKETPLACE_API_KEY"},
		{"MARKETPLACE.TIMEOUT_SECONDS", "MARKETPLACE_TIMEOUT_SECONDS"},
		// Rate limit config
		{"RATE_LIMIT.REQUESTS_PER_MINUTE", "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		// Voice config
		{"VOICE.DEFAULT_LANGUAGE", "VOICE_DEFAULT_LANGUAGE"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
		"redis_address", v.GetString("REDIS.ADDRESS"),
		"marketplace_base_url", v.GetString("MARKETPLACE.BASE_URL"),
		"marketplace_api_key", logger.MaskAPIKey(v.GetString("MARKETPLACE.API_KEY")),
		"default_language", v.GetString("VOICE.DEFAULT_LANGUAGE"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Redis.Address == "" {
		log.Warn("Redis address is not set. Falling back to in-memory history and disabling rate limiting.")
	}

	if err := validateMarketplaceConfig(&cfg.Marketplace, log); err != nil {
		return err
	}

	if cfg.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	if cfg.Voice.DefaultLanguage == "" {
		return fmt.Errorf("voice default language is required")
	}

	return nil
}

// validateMarketplaceConfig validates the marketplace API configuration.
func validateMarketplaceConfig(cfg *MarketplaceConfig, log *zap.SugaredLogger) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("marketplace base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return fmt.Errorf("invalid marketplace base URL: %w", err)
	}
	if cfg.APIKey == "" {
		log.Warn("Marketplace API key is not set. Outbound create calls will be unauthenticated.")
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("marketplace timeout must be positive")
	}
	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
