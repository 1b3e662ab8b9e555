package scullery

import (
	"context"
	"time"
)

// Recipe is a permanent, committed recipe. Recipes are created as a whole
// aggregate (header, ingredient rows, step rows) by either the commit
// pipeline or direct catalog management.
type Recipe struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PrepTimeMinutes *int      `json:"prepTimeMinutes"`
	CookTimeMinutes *int      `json:"cookTimeMinutes"`
	Servings        int       `json:"servings"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`

	// Ingredients and Steps are populated in row order when the aggregate
	// is loaded or created.
	Ingredients []*RecipeIngredient `json:"ingredients"`
	Steps       []*RecipeStep       `json:"steps"`
}

// Validate returns an error if the recipe contains invalid fields.
// A permanent recipe ingredient always references a catalog ingredient;
// unresolved matches never reach this type.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "recipe name required")
	}
	if r.Servings < 1 {
		return Errorf(EINVALID, "recipe servings must be at least 1")
	}
	for _, ing := range r.Ingredients {
		if ing.IngredientID == "" {
			return Errorf(EINVALID, "recipe ingredient must reference a catalog ingredient")
		}
	}
	return nil
}

// RecipeIngredient is a single ingredient row of a permanent recipe.
type RecipeIngredient struct {
	ID           string  `json:"id"`
	RecipeID     string  `json:"recipeId"`
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes"`
	Position     int     `json:"position"`
}

// RecipeStep is a single instruction row of a permanent recipe.
// StepNumber is 1-based and sequential.
type RecipeStep struct {
	ID          string `json:"id"`
	RecipeID    string `json:"recipeId"`
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
}

// RecipeService represents a service for managing permanent recipes.
type RecipeService interface {
	// CreateRecipe creates a recipe together with its ingredient and step
	// rows as one atomic unit.
	CreateRecipe(ctx context.Context, recipe *Recipe) error

	// FindRecipeByID retrieves a recipe aggregate by ID, with ingredient
	// rows in position order and step rows in step number order.
	// Returns ENOTFOUND if the recipe does not exist.
	FindRecipeByID(ctx context.Context, id string) (*Recipe, error)

	// FindRecipes retrieves recipe headers matching the filter.
	FindRecipes(ctx context.Context, filter RecipeFilter) ([]*Recipe, error)

	// DeleteRecipe permanently removes a recipe and its rows.
	// Returns ENOTFOUND if the recipe does not exist.
	DeleteRecipe(ctx context.Context, id string) error
}

// RecipeFilter represents a filter for FindRecipes.
type RecipeFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
