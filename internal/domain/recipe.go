package domain

import "time"

// Recipe is the subset of a Mealie recipe needed for yield scaling
type Recipe struct {
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Yield         string    `json:"yield"`
	YieldQuantity float64   `json:"yieldQuantity"`
	Servings      float64   `json:"servings"`
	Ingredients   []string  `json:"ingredients"`
	FetchedAt     time.Time `json:"fetchedAt,omitempty"`
}

// ScaledIngredient pairs an ingredient line with its rescaled form
type ScaledIngredient struct {
	Original string `json:"original"`
	Scaled   string `json:"scaled"`
}

// ScaledRecipe is a recipe with its yield, servings and ingredients multiplied
type ScaledRecipe struct {
	Slug           string             `json:"slug"`
	Name           string             `json:"name"`
	Scale          float64            `json:"scale"`
	Format         string             `json:"format"`
	Yield          string             `json:"yield"`
	ScaledYield    string             `json:"scaledYield"`
	Servings       float64            `json:"servings"`
	ScaledServings float64            `json:"scaledServings"`
	Ingredients    []ScaledIngredient `json:"ingredients"`
	Source         string             `json:"source"` // "Mealie" or "Cache"
}
