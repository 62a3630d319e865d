package config

import (
	"testing"

	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "hi-IN", cfg.Voice.DefaultLanguage)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 10, cfg.Marketplace.TimeoutSeconds)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MARKETPLACE_BASE_URL", "https://market.example.com/api")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("VOICE_DEFAULT_LANGUAGE", "en-IN")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://market.example.com/api", cfg.Marketplace.BaseURL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "en-IN", cfg.Voice.DefaultLanguage)
}

func TestLoadConfig_InvalidMarketplaceURL(t *testing.T) {
	t.Setenv("MARKETPLACE_BASE_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marketplace")
}

func TestLoadConfig_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS_PER_MINUTE", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestValidateConfig_InvalidOrigin(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"nope"},
		},
		Marketplace: MarketplaceConfig{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSeconds: 10,
		},
		RateLimit: RateLimitConfig{RequestsPerMinute: 60, WindowSeconds: 60},
		Voice:     VoiceConfig{DefaultLanguage: "hi-IN"},
	}

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed origin")
}
