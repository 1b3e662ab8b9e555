package scullery

import (
	"context"
	"time"
)

// ConfirmableRecipe is a staged recipe draft awaiting human review. It is
// created by the scraping pipeline, optionally edited by the reviewer, and
// either committed (becoming a permanent Recipe) or rejected (deleted).
type ConfirmableRecipe struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SourceURL       string    `json:"sourceUrl"`
	PrepTimeMinutes *int      `json:"prepTimeMinutes"`
	CookTimeMinutes *int      `json:"cookTimeMinutes"`
	Servings        *int      `json:"servings"`
	Description     string    `json:"description"`
	PageHash        string    `json:"pageHash"`
	CreatedAt       time.Time `json:"createdAt"`

	Ingredients []*ConfirmableRecipeIngredient `json:"ingredients"`
	Steps       []*ConfirmableRecipeStep       `json:"steps"`
}

// Validate returns an error if the confirmable recipe contains invalid fields.
func (c *ConfirmableRecipe) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "confirmable recipe name required")
	}
	return nil
}

// ConfirmableRecipeIngredient is one staged ingredient line.
// IngredientID is the best-guess catalog reference and is nil when the
// line could not be matched; Confidence is 0 exactly in that case and 1
// exactly when the match came from a case-insensitive name equality.
// SourceText preserves the scraped line verbatim.
type ConfirmableRecipeIngredient struct {
	ID                  string  `json:"id"`
	ConfirmableRecipeID string  `json:"confirmableRecipeId"`
	IngredientID        *string `json:"ingredientId"`
	Quantity            float64 `json:"quantity"`
	Confidence          float64 `json:"confidence"`
	SourceText          string  `json:"sourceText"`
	Position            int     `json:"position"`
}

// ConfirmableRecipeStep is one staged instruction line.
// StepNumber is 1-based and sequential.
type ConfirmableRecipeStep struct {
	ID                  string `json:"id"`
	ConfirmableRecipeID string `json:"confirmableRecipeId"`
	StepNumber          int    `json:"stepNumber"`
	Description         string `json:"description"`
}

// ConfirmableRecipeService represents a service for managing staged drafts.
type ConfirmableRecipeService interface {
	// CreateConfirmableRecipe creates the draft header plus its ingredient
	// and step rows. Staging has no atomicity requirement: a partially
	// written draft is still reviewable and can be rejected or re-scraped.
	CreateConfirmableRecipe(ctx context.Context, recipe *ConfirmableRecipe) error

	// FindConfirmableRecipeByID retrieves a draft aggregate by ID, with
	// ingredient rows in position order and step rows in step number order.
	// Returns ENOTFOUND if the draft does not exist.
	FindConfirmableRecipeByID(ctx context.Context, id string) (*ConfirmableRecipe, error)

	// FindConfirmableRecipes retrieves draft headers matching the filter.
	FindConfirmableRecipes(ctx context.Context, filter ConfirmableRecipeFilter) ([]*ConfirmableRecipe, error)

	// DeleteConfirmableRecipe permanently removes a draft and its rows.
	// This is the reject path. Returns ENOTFOUND if the draft does not exist.
	DeleteConfirmableRecipe(ctx context.Context, id string) error
}

// ConfirmableRecipeFilter represents a filter for FindConfirmableRecipes.
type ConfirmableRecipeFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CommitService converts a confirmable recipe into a permanent recipe.
type CommitService interface {
	// CommitConfirmableRecipe runs as a single all-or-nothing transaction:
	// it creates the permanent recipe aggregate from the draft and deletes
	// the draft's rows and header. If any draft ingredient has no catalog
	// reference it fails with EUNPROCESSABLE and leaves the draft intact.
	// Returns ENOTFOUND if the draft does not exist, which also makes a
	// concurrent second commit of the same draft fail rather than
	// double-commit.
	CommitConfirmableRecipe(ctx context.Context, id string) (*Recipe, error)
}
