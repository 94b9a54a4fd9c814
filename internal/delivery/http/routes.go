package http

import (
	"github.com/gin-gonic/gin"
	"github.com/yieldscale/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(corsOrigins(cfg)))

	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}
	{
		v1.POST("/yield/scale", handler.ScaleYield)
		v1.GET("/recipes/:slug/scaled", handler.ScaleRecipe)
	}

	return router
}

// corsOrigins is the configured allow-list plus the Mealie server's own origin,
// so its web UI can call the API without extra configuration.
func corsOrigins(cfg *config.Config) []string {
	origins := make([]string, 0, len(cfg.Server.AllowedOrigins)+1)
	origins = append(origins, cfg.Server.AllowedOrigins...)
	if origin := originOf(cfg.Mealie.BaseURL); origin != "" {
		origins = append(origins, origin)
	}
	return origins
}
