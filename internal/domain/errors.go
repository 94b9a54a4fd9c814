package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidScale is returned when the scale factor is not a positive finite number
	ErrInvalidScale = errors.New("scale must be a positive number")

	// ErrNoQuantity is returned when the text contains no recognizable quantity
	ErrNoQuantity = errors.New("no quantity found in text")

	// ErrZeroDenominator is returned when a fraction or mixed number divides by zero
	ErrZeroDenominator = errors.New("fraction has a zero denominator")

	// ErrRecipeNotFound is returned when the recipe server has no recipe for the slug
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrMealieAPIFailure is returned when a request to the recipe server fails
	ErrMealieAPIFailure = errors.New("Mealie API request failed")

	// ErrMealieNotConfigured is returned when no recipe server is configured
	ErrMealieNotConfigured = errors.New("recipe server not configured")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
