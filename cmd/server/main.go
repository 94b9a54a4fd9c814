package main

import (
	"fmt"
	"log"
	"os"

	"github.com/yieldscale/backend/config"
	httpDelivery "github.com/yieldscale/backend/internal/delivery/http"
	"github.com/yieldscale/backend/internal/domain"
	"github.com/yieldscale/backend/internal/infrastructure/cache"
	"github.com/yieldscale/backend/internal/infrastructure/mealie"
	"github.com/yieldscale/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting YieldScale Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s, cleanup every %s", cfg.Cache.TTL, cfg.Cache.CleanupInterval)

	// Recipe endpoints are only served when a Mealie server is configured
	var recipeClient domain.RecipeClient
	if cfg.Mealie.BaseURL != "" {
		mealieClient := mealie.NewClient(cfg.Mealie.BaseURL, cfg.Mealie.APIToken, cfg.RateLimit.Mealie)
		if cfg.Server.Environment == "development" {
			mealieClient.SetDebug(true)
			log.Printf("Mealie client debug mode enabled")
		}
		recipeClient = mealieClient

		if cfg.Mealie.APIToken != "" {
			log.Printf("Mealie configured: %s (token: %s...)", cfg.Mealie.BaseURL, maskToken(cfg.Mealie.APIToken))
		} else {
			log.Printf("Mealie configured: %s (no token, public recipes only)", cfg.Mealie.BaseURL)
		}
	} else {
		log.Printf("WARNING: Mealie not configured - recipe endpoints will return 501")
	}

	// Initialize usecase layer
	scalingService := usecase.NewScalingService(
		memoryCache,
		recipeClient,
		usecase.ScalingServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			DefaultFormat:      cfg.Scaling.DefaultFormat,
			MaxTextLength:      cfg.Scaling.MaxTextLength,
			EnableDebugLogging: cfg.Scaling.EnableDebugLogging,
		},
	)

	log.Printf("Scaling: format=%s, max_text=%d, debug=%v",
		cfg.Scaling.DefaultFormat,
		cfg.Scaling.MaxTextLength,
		cfg.Scaling.EnableDebugLogging)

	handler := httpDelivery.NewHandler(scalingService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// maskToken returns at most the first four characters of a secret
func maskToken(token string) string {
	if len(token) <= 4 {
		return token[:len(token)/2]
	}
	return token[:4]
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
