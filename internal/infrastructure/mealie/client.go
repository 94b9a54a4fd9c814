package mealie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yieldscale/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// Client handles communication with a Mealie recipe server
type Client struct {
	httpClient  *http.Client
	apiToken    string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Mealie API client.
// requestsPerHour bounds outbound traffic; zero means 1000 per hour.
func NewClient(baseURL, apiToken string, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiToken:    apiToken,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after the given attempt (1-based)
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// GetRecipe retrieves a recipe by slug
func (c *Client) GetRecipe(ctx context.Context, slug string) (*domain.Recipe, error) {
	reqURL := fmt.Sprintf("%s/api/recipes/%s", c.baseURL, url.PathEscape(slug))

	if c.debug {
		log.Printf("[MEALIE] GetRecipe called with slug: %q", slug)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[MEALIE] Request error (attempt %d): %v", attempt, err)
			lastErr = err
		} else {
			switch {
			case status == http.StatusOK:
				var payload recipeResponse
				if err := json.Unmarshal(body, &payload); err != nil {
					return nil, fmt.Errorf("failed to decode response: %w", err)
				}
				if c.debug {
					log.Printf("[MEALIE] Loaded recipe %q with %d ingredients", payload.Slug, len(payload.RecipeIngredient))
				}
				return MapToRecipe(&payload), nil

			case status == http.StatusNotFound:
				return nil, domain.ErrRecipeNotFound

			case status == http.StatusUnauthorized || status == http.StatusForbidden:
				// retrying will not fix credentials
				return nil, fmt.Errorf("%w: status %d", domain.ErrMealieAPIFailure, status)

			default:
				log.Printf("[MEALIE] API error (attempt %d) - Status: %d, Body: %s", attempt, status, string(body))
				lastErr = fmt.Errorf("%w: status %d", domain.ErrMealieAPIFailure, status)
			}
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt)):
			}
		}
	}

	log.Printf("[MEALIE] All retries failed for slug: %q", slug)
	return nil, lastErr
}

// doRequest executes an HTTP GET request and returns the body and status
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "yieldscale/1.0")
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrMealieAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: reading body: %v", domain.ErrMealieAPIFailure, err)
	}

	return body, resp.StatusCode, nil
}
