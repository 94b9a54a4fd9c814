package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yieldscale/backend/internal/domain"
	"github.com/yieldscale/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scalingService *usecase.ScalingService
}

// NewHandler creates a new HTTP handler.
// A nil service makes the scaling endpoints answer 501.
func NewHandler(scalingService *usecase.ScalingService) *Handler {
	return &Handler{
		scalingService: scalingService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "yieldscale-backend",
		"version": "1.0.0",
	})
}

// ScaleYield handles POST /api/v1/yield/scale
func (h *Handler) ScaleYield(c *gin.Context) {
	if h.scalingService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Scaling service not configured",
		})
		return
	}

	var request domain.ScaleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.scalingService.ScaleYield(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScaleRecipe handles GET /api/v1/recipes/:slug/scaled?scale=&format=
func (h *Handler) ScaleRecipe(c *gin.Context) {
	if h.scalingService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Scaling service not configured",
		})
		return
	}

	scale, err := strconv.ParseFloat(c.Query("scale"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": "scale query parameter must be a number",
		})
		return
	}

	recipe, err := h.scalingService.ScaleRecipe(c.Request.Context(), c.Param("slug"), scale, c.Query("format"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidScale):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
	case errors.Is(err, domain.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Rate limit exceeded, please try again later",
		})
	case errors.Is(err, domain.ErrMealieNotConfigured):
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recipe server not configured",
		})
	case errors.Is(err, domain.ErrMealieAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Recipe server temporarily unavailable",
		})
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
