package scullery

import "context"

// IngredientMatch is the result of resolving one raw ingredient line
// against the catalog. It always exists: an unmatched line yields a match
// with a nil Ingredient and zero confidence.
type IngredientMatch struct {
	// SourceText is the original raw line, preserved verbatim.
	SourceText string

	// Quantity is the parsed leading quantity; 0 when the line has none.
	Quantity float64

	// Confidence is in [0,1]. It is exactly 1 iff the match came from a
	// case-insensitive name equality and exactly 0 iff Ingredient is nil.
	Confidence float64

	// Ingredient is a weak reference into the catalog, nil when unresolved.
	Ingredient *Ingredient
}

// RecipeDraft is the matched but not yet persisted form of a scraped
// recipe. It exists only to be staged as a ConfirmableRecipe.
type RecipeDraft struct {
	Name            string
	Ingredients     []*IngredientMatch
	Steps           []string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Servings        *int
	Description     string
}

// RecipeLoader runs the scraping pipeline for a single URL and stages the
// result as a confirmable recipe.
type RecipeLoader interface {
	LoadRecipe(ctx context.Context, url string) (*ConfirmableRecipe, error)
}
