package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/yieldscale/backend/internal/domain"
)

// ScalingServiceConfig holds configuration for the scaling service
type ScalingServiceConfig struct {
	CacheTTL           time.Duration
	DefaultFormat      string
	MaxTextLength      int
	EnableDebugLogging bool
}

// ScalingService rescales recipe yields, memoizing results in the cache
type ScalingService struct {
	cache         domain.CacheRepository
	recipeClient  domain.RecipeClient
	cacheTTL      time.Duration
	defaultFormat string
	maxTextLength int
	debug         bool
}

// NewScalingService creates a new scaling service with dependencies.
// recipeClient may be nil when no Mealie server is configured.
func NewScalingService(
	cache domain.CacheRepository,
	recipeClient domain.RecipeClient,
	config ScalingServiceConfig,
) *ScalingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	defaultFormat := config.DefaultFormat
	if defaultFormat == "" {
		defaultFormat = domain.FormatMarkup
	}

	maxTextLength := config.MaxTextLength
	if maxTextLength == 0 {
		maxTextLength = 500
	}

	return &ScalingService{
		cache:         cache,
		recipeClient:  recipeClient,
		cacheTTL:      cacheTTL,
		defaultFormat: defaultFormat,
		maxTextLength: maxTextLength,
		debug:         config.EnableDebugLogging,
	}
}

// ScaleYield rescales the first quantity of a yield string.
// Flow: validate -> check cache -> rescale -> cache -> return
func (s *ScalingService) ScaleYield(
	ctx context.Context,
	request *domain.ScaleRequest,
) (*domain.ScaleResult, error) {
	if request == nil || request.Text == "" {
		return nil, domain.ErrInvalidRequest
	}
	if len(request.Text) > s.maxTextLength {
		return nil, fmt.Errorf("%w: text longer than %d bytes", domain.ErrInvalidRequest, s.maxTextLength)
	}
	if !IsValidScale(request.Scale) {
		return nil, domain.ErrInvalidScale
	}

	format, err := s.resolveFormat(request.Format)
	if err != nil {
		return nil, err
	}

	cacheKey := generateYieldCacheKey(request.Text, request.Scale, format)

	if cached, err := s.getResultFromCache(ctx, cacheKey); err == nil {
		cached.Source = "Cache"
		return cached, nil
	}

	scaled := RescaleYield(request.Text, request.Scale, format == domain.FormatMarkup)

	result := &domain.ScaleResult{
		Original: request.Text,
		Scaled:   scaled,
		Scale:    request.Scale,
		Format:   format,
		Changed:  scaled != request.Text,
		Source:   "Computed",
	}
	if match, err := FindQuantity(request.Text); match != nil && err == nil {
		result.Notation = match.Notation.String()
	}

	if s.debug {
		log.Printf("[SCALE] %q x%v (%s) -> %q", request.Text, request.Scale, format, scaled)
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		log.Printf("[CACHE] failed to store %s: %v", cacheKey, err)
	}

	return result, nil
}

// ScaleRecipe fetches a recipe from Mealie and rescales its yield, servings
// and ingredient lines. Each ingredient line has only its first quantity scaled.
func (s *ScalingService) ScaleRecipe(
	ctx context.Context,
	slug string,
	scale float64,
	format string,
) (*domain.ScaledRecipe, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrInvalidRequest
	}
	if !IsValidScale(scale) {
		return nil, domain.ErrInvalidScale
	}

	format, err := s.resolveFormat(format)
	if err != nil {
		return nil, err
	}

	if s.recipeClient == nil {
		return nil, domain.ErrMealieNotConfigured
	}

	recipe, source, err := s.fetchRecipe(ctx, slug)
	if err != nil {
		return nil, err
	}

	markup := format == domain.FormatMarkup

	scaled := &domain.ScaledRecipe{
		Slug:           recipe.Slug,
		Name:           recipe.Name,
		Scale:          scale,
		Format:         format,
		Yield:          recipe.Yield,
		ScaledYield:    RescaleYield(recipe.Yield, scale, markup),
		Servings:       recipe.Servings,
		ScaledServings: recipe.Servings * scale,
		Ingredients:    make([]domain.ScaledIngredient, 0, len(recipe.Ingredients)),
		Source:         source,
	}

	for _, line := range recipe.Ingredients {
		scaled.Ingredients = append(scaled.Ingredients, domain.ScaledIngredient{
			Original: line,
			Scaled:   RescaleYield(line, scale, markup),
		})
	}

	if s.debug {
		log.Printf("[SCALE] recipe %q x%v: yield %q -> %q, %d ingredients",
			slug, scale, scaled.Yield, scaled.ScaledYield, len(scaled.Ingredients))
	}

	return scaled, nil
}

// fetchRecipe returns the recipe from cache or Mealie, with its source label
func (s *ScalingService) fetchRecipe(ctx context.Context, slug string) (*domain.Recipe, string, error) {
	cacheKey := "recipe:" + strings.ToLower(slug)

	if recipe, err := s.getRecipeFromCache(ctx, cacheKey); err == nil {
		return recipe, "Cache", nil
	}

	recipe, err := s.recipeClient.GetRecipe(ctx, slug)
	if err != nil {
		return nil, "", err
	}

	recipe.FetchedAt = time.Now()
	if err := s.cache.Set(ctx, cacheKey, recipe, s.cacheTTL); err != nil {
		log.Printf("[CACHE] failed to store %s: %v", cacheKey, err)
	}

	return recipe, "Mealie", nil
}

// resolveFormat applies the default format and rejects unknown ones
func (s *ScalingService) resolveFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		return s.defaultFormat, nil
	case domain.FormatMarkup:
		return domain.FormatMarkup, nil
	case domain.FormatPlain:
		return domain.FormatPlain, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", domain.ErrInvalidRequest, format)
	}
}

// generateYieldCacheKey creates the cache key for a rescaled yield.
// Format: "yield:{format}:{scale}:{text}"
func generateYieldCacheKey(text string, scale float64, format string) string {
	return fmt.Sprintf("yield:%s:%s:%s", format, strconv.FormatFloat(scale, 'g', -1, 64), text)
}

// getResultFromCache retrieves a rescaled yield from cache
func (s *ScalingService) getResultFromCache(ctx context.Context, key string) (*domain.ScaleResult, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if result, ok := value.(*domain.ScaleResult); ok {
		copied := *result
		return &copied, nil
	}

	var result domain.ScaleResult
	if err := decodeCached(value, &result); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &result, nil
}

// getRecipeFromCache retrieves a recipe from cache
func (s *ScalingService) getRecipeFromCache(ctx context.Context, key string) (*domain.Recipe, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if recipe, ok := value.(*domain.Recipe); ok {
		return recipe, nil
	}

	var recipe domain.Recipe
	if err := decodeCached(value, &recipe); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &recipe, nil
}

// decodeCached converts a value stored as generic JSON (map) back into target
func decodeCached(value interface{}, target interface{}) error {
	if _, ok := value.(map[string]interface{}); !ok {
		return domain.ErrCacheMiss
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
