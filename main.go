package main

import (
	"crypto/tls"

	"github.com/kisansetu/kisan-voice-backend/config"
	"github.com/kisansetu/kisan-voice-backend/handlers"
	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/router"
	"github.com/kisansetu/kisan-voice-backend/services"
	"github.com/kisansetu/kisan-voice-backend/store"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client with TLS in production. Redis is optional: with
	// no address configured the service falls back to in-memory history and
	// runs without rate limiting.
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		if cfg.IsProduction() || cfg.Redis.UseTLS {
			redisOptions.TLSConfig = &tls.Config{
				ServerName: cfg.Redis.Address,
				MinVersion: tls.VersionTLS12,
			}
		}

		redisClient = redis.NewClient(redisOptions)
	} else {
		log.Warn("No Redis address configured, voice history will not survive restarts")
	}

	// Command history store
	var history store.CommandStore
	if redisClient != nil {
		history = store.NewRedisCommandStore(redisClient)
	} else {
		history = store.NewMemoryCommandStore()
	}

	// Services
	voiceService := services.NewVoiceService(cfg.Voice.DefaultLanguage)
	recorder := services.NewClientRecorder()
	session := services.NewVoiceSession(recorder, voiceService, history)
	marketplace := services.NewMarketplaceService(&cfg.Marketplace)
	confirmation := services.NewConfirmationService(marketplace)
	healthService := services.NewHealthService(redisClient, cfg.Server.Version)

	// Handlers
	voiceHandler := handlers.NewVoiceHandler(voiceService, session, recorder, confirmation, history)
	healthHandler := handlers.NewHealthHandler(healthService)

	// Router setup
	r := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		VoiceHandler:  voiceHandler,
		HealthHandler: healthHandler,
		RedisClient:   redisClient,
		Logger:        log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
