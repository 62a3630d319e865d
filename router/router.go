package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kisansetu/kisan-voice-backend/config"
	"github.com/kisansetu/kisan-voice-backend/handlers"
	"github.com/kisansetu/kisan-voice-backend/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config        *config.Config
	VoiceHandler  *handlers.VoiceHandler
	HealthHandler *handlers.HealthHandler
	RedisClient   *redis.Client
	Logger        *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus metrics endpoint

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		voiceRoutes := v1.Group("/voice")
		voiceRoutes.Use(middleware.VoiceRateLimiter(
			deps.RedisClient,
			deps.Config.RateLimit.RequestsPerMinute,
			time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
		))
		{
			voiceRoutes.POST("/process", deps.VoiceHandler.ProcessHandler)
			voiceRoutes.POST("/confirm", deps.VoiceHandler.ConfirmHandler)
			voiceRoutes.GET("/history", deps.VoiceHandler.HistoryHandler)

			sessionRoutes := voiceRoutes.Group("/session")
			{
				sessionRoutes.POST("/start", deps.VoiceHandler.SessionStartHandler)
				sessionRoutes.POST("/stop", deps.VoiceHandler.SessionStopHandler)
				sessionRoutes.POST("/reset", deps.VoiceHandler.SessionResetHandler)
			}
		}
	}

	return r
}
