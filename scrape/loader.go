package scrape

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scullery"
)

// Compile-time interface verification.
var _ scullery.RecipeLoader = (*Loader)(nil)

// Loader runs the import pipeline for a single URL: fetch the page,
// extract its recipe schema, match every ingredient line against the
// catalog, and stage the result as a confirmable recipe. The stages run
// strictly in order; no stage runs without its predecessor's success.
type Loader struct {
	Fetcher      scullery.Fetcher
	Extractor    scullery.SchemaExtractor
	Matcher      *Matcher
	Confirmables scullery.ConfirmableRecipeService
}

// LoadRecipe scrapes url and stages a confirmable recipe for review.
func (l *Loader) LoadRecipe(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
	html, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	fetch, err := l.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	draft, err := l.BuildDraft(ctx, fetch)
	if err != nil {
		return nil, err
	}

	recipe := draftToConfirmable(draft, url, hashPage(html))
	if err := l.Confirmables.CreateConfirmableRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("stage draft: %w", err)
	}
	return recipe, nil
}

// BuildDraft maps every ingredient line of an InitialFetch through the
// matcher, preserving ingredient and step order. Unmatched lines are kept
// with zero confidence; only catalog store failures abort the build.
func (l *Loader) BuildDraft(ctx context.Context, fetch *scullery.InitialFetch) (*scullery.RecipeDraft, error) {
	draft := &scullery.RecipeDraft{
		Name:            fetch.Name,
		Steps:           fetch.Steps,
		PrepTimeMinutes: fetch.PrepTimeMinutes,
		CookTimeMinutes: fetch.CookTimeMinutes,
		Servings:        fetch.Servings,
		Description:     fetch.Description,
	}

	for _, line := range fetch.Ingredients {
		match, err := l.Matcher.Match(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", line, err)
		}
		draft.Ingredients = append(draft.Ingredients, match)
	}

	return draft, nil
}

// draftToConfirmable shapes a draft into the persistable aggregate:
// one ingredient row per match in draft order, one step row per step with
// a 1-based step number.
func draftToConfirmable(draft *scullery.RecipeDraft, sourceURL, pageHash string) *scullery.ConfirmableRecipe {
	recipe := &scullery.ConfirmableRecipe{
		Name:            draft.Name,
		SourceURL:       sourceURL,
		PrepTimeMinutes: draft.PrepTimeMinutes,
		CookTimeMinutes: draft.CookTimeMinutes,
		Servings:        draft.Servings,
		Description:     draft.Description,
		PageHash:        pageHash,
	}

	for i, match := range draft.Ingredients {
		row := &scullery.ConfirmableRecipeIngredient{
			Quantity:   match.Quantity,
			Confidence: match.Confidence,
			SourceText: match.SourceText,
			Position:   i,
		}
		if match.Ingredient != nil {
			id := match.Ingredient.ID
			row.IngredientID = &id
		}
		recipe.Ingredients = append(recipe.Ingredients, row)
	}

	for i, step := range draft.Steps {
		recipe.Steps = append(recipe.Steps, &scullery.ConfirmableRecipeStep{
			StepNumber:  i + 1,
			Description: step,
		})
	}

	return recipe
}

// hashPage fingerprints fetched page content so a re-scrape of an
// unchanged page can be detected.
func hashPage(html string) string {
	h := xxhash.Sum64String(html)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
