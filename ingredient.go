package scullery

import (
	"context"
	"time"
)

// Ingredient is an entry in the canonical ingredient catalog. Free-text
// ingredient lines from scraped recipes are resolved against it.
type Ingredient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the ingredient contains invalid fields.
func (i *Ingredient) Validate() error {
	if i.Name == "" {
		return Errorf(EINVALID, "ingredient name required")
	}
	return nil
}

// IngredientService represents a service for managing the ingredient catalog.
type IngredientService interface {
	// CreateIngredient creates a new catalog entry.
	// Returns ECONFLICT if an entry with the same name already exists
	// (names are compared case-insensitively).
	CreateIngredient(ctx context.Context, ingredient *Ingredient) error

	// FindIngredientByID retrieves an ingredient by ID.
	// Returns ENOTFOUND if the ingredient does not exist.
	FindIngredientByID(ctx context.Context, id string) (*Ingredient, error)

	// FindIngredientByName retrieves an ingredient whose name equals the
	// given name, compared case-insensitively.
	// Returns ENOTFOUND if no such ingredient exists.
	FindIngredientByName(ctx context.Context, name string) (*Ingredient, error)

	// FindIngredientsByNameContaining retrieves ingredients whose name
	// contains the given substring, compared case-insensitively,
	// ordered by name.
	FindIngredientsByNameContaining(ctx context.Context, substring string) ([]*Ingredient, error)

	// FindIngredients retrieves ingredients matching the filter, ordered by name.
	FindIngredients(ctx context.Context, filter IngredientFilter) ([]*Ingredient, error)

	// UpdateIngredient updates an existing ingredient.
	// Returns ENOTFOUND if the ingredient does not exist.
	UpdateIngredient(ctx context.Context, id string, upd IngredientUpdate) (*Ingredient, error)

	// DeleteIngredient permanently removes an ingredient.
	// Returns ENOTFOUND if the ingredient does not exist.
	DeleteIngredient(ctx context.Context, id string) error
}

// IngredientFilter represents a filter for FindIngredients.
type IngredientFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// IngredientUpdate represents fields that can be updated on an ingredient.
type IngredientUpdate struct {
	Name *string `json:"name"`
}
