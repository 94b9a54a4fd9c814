package mealie

import (
	"strconv"
	"strings"

	"github.com/yieldscale/backend/internal/domain"
)

// recipeResponse is the part of Mealie's GET /api/recipes/{slug} payload we read
type recipeResponse struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Slug                string               `json:"slug"`
	RecipeYield         string               `json:"recipeYield"`
	RecipeYieldQuantity float64              `json:"recipeYieldQuantity"`
	RecipeServings      float64              `json:"recipeServings"`
	RecipeIngredient    []ingredientResponse `json:"recipeIngredient"`
}

type ingredientResponse struct {
	Title        string   `json:"title,omitempty"`
	Note         string   `json:"note"`
	Display      string   `json:"display"`
	OriginalText string   `json:"originalText"`
	Quantity     float64  `json:"quantity"`
	Unit         *nameRef `json:"unit"`
	Food         *nameRef `json:"food"`
}

type nameRef struct {
	Name string `json:"name"`
}

// MapToRecipe converts a Mealie recipe payload to our domain Recipe
func MapToRecipe(r *recipeResponse) *domain.Recipe {
	recipe := &domain.Recipe{
		Slug:          r.Slug,
		Name:          r.Name,
		Yield:         strings.TrimSpace(r.RecipeYield),
		YieldQuantity: r.RecipeYieldQuantity,
		Servings:      r.RecipeServings,
		Ingredients:   make([]string, 0, len(r.RecipeIngredient)),
	}

	for _, ing := range r.RecipeIngredient {
		if line := ingredientLine(ing); line != "" {
			recipe.Ingredients = append(recipe.Ingredients, line)
		}
	}

	return recipe
}

// ingredientLine picks the best human-readable text for an ingredient.
// Preference: display, original text, then a line rebuilt from parsed fields.
func ingredientLine(ing ingredientResponse) string {
	if s := strings.TrimSpace(ing.Display); s != "" {
		return s
	}
	if s := strings.TrimSpace(ing.OriginalText); s != "" {
		return s
	}

	var parts []string
	if ing.Quantity > 0 {
		parts = append(parts, strconv.FormatFloat(ing.Quantity, 'f', -1, 64))
	}
	if ing.Unit != nil && ing.Unit.Name != "" {
		parts = append(parts, ing.Unit.Name)
	}
	if ing.Food != nil && ing.Food.Name != "" {
		parts = append(parts, ing.Food.Name)
	}
	if s := strings.TrimSpace(ing.Note); s != "" {
		parts = append(parts, s)
	}

	return strings.Join(parts, " ")
}
