package scrape_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/mock"
	"github.com/fwojciec/scullery/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_BuildDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("maps every ingredient line and preserves order", func(t *testing.T) {
		t.Parallel()

		loader := &scrape.Loader{Matcher: scrape.NewMatcher(catalogOf("Water", "Yellow Onion"))}
		ten := 10

		draft, err := loader.BuildDraft(ctx, &scullery.InitialFetch{
			Name:            "Soup",
			Ingredients:     []string{"2 cups water", "1 onion", "1 pinch stardust"},
			Steps:           []string{"Boil water", "Add onion"},
			PrepTimeMinutes: &ten,
			Description:     "A soup.",
		})
		require.NoError(t, err)

		assert.Equal(t, "Soup", draft.Name)
		assert.Equal(t, []string{"Boil water", "Add onion"}, draft.Steps)
		require.NotNil(t, draft.PrepTimeMinutes)
		assert.Equal(t, 10, *draft.PrepTimeMinutes)
		assert.Nil(t, draft.CookTimeMinutes)

		require.Len(t, draft.Ingredients, 3)
		assert.Equal(t, "2 cups water", draft.Ingredients[0].SourceText)
		assert.Equal(t, 2.0, draft.Ingredients[0].Quantity)
		assert.Equal(t, "1 onion", draft.Ingredients[1].SourceText)
		require.NotNil(t, draft.Ingredients[1].Ingredient)
		assert.Equal(t, "Yellow Onion", draft.Ingredients[1].Ingredient.Name)
		assert.Nil(t, draft.Ingredients[2].Ingredient)
		assert.Zero(t, draft.Ingredients[2].Confidence)
	})

	t.Run("catalog failure aborts the build", func(t *testing.T) {
		t.Parallel()

		loader := &scrape.Loader{Matcher: scrape.NewMatcher(&mock.IngredientService{
			FindIngredientByNameFn: func(ctx context.Context, name string) (*scullery.Ingredient, error) {
				return nil, errors.New("store unavailable")
			},
		})}

		_, err := loader.BuildDraft(ctx, &scullery.InitialFetch{
			Name:        "Soup",
			Ingredients: []string{"2 cups water"},
		})
		require.Error(t, err)
	})
}

func TestLoader_LoadRecipe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stages a confirmable recipe", func(t *testing.T) {
		t.Parallel()

		var created *scullery.ConfirmableRecipe
		loader := &scrape.Loader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					assert.Equal(t, "https://example.com/soup", url)
					return "<html>page</html>", nil
				},
			},
			Extractor: &mock.SchemaExtractor{
				ExtractFn: func(html string) (*scullery.InitialFetch, error) {
					return &scullery.InitialFetch{
						Name:        "Soup",
						Ingredients: []string{"2 cups water"},
						Steps:       []string{"Boil water", "Serve"},
					}, nil
				},
			},
			Matcher: scrape.NewMatcher(catalogOf("Water")),
			Confirmables: &mock.ConfirmableRecipeService{
				CreateConfirmableRecipeFn: func(ctx context.Context, recipe *scullery.ConfirmableRecipe) error {
					created = recipe
					return nil
				},
			},
		}

		recipe, err := loader.LoadRecipe(ctx, "https://example.com/soup")
		require.NoError(t, err)
		require.Same(t, created, recipe)

		assert.Equal(t, "Soup", recipe.Name)
		assert.Equal(t, "https://example.com/soup", recipe.SourceURL)
		assert.NotEmpty(t, recipe.PageHash)

		require.Len(t, recipe.Ingredients, 1)
		assert.Equal(t, 0, recipe.Ingredients[0].Position)
		assert.Equal(t, "2 cups water", recipe.Ingredients[0].SourceText)

		require.Len(t, recipe.Steps, 2)
		assert.Equal(t, 1, recipe.Steps[0].StepNumber)
		assert.Equal(t, "Boil water", recipe.Steps[0].Description)
		assert.Equal(t, 2, recipe.Steps[1].StepNumber)
	})

	t.Run("fetch failure halts the pipeline", func(t *testing.T) {
		t.Parallel()

		loader := &scrape.Loader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
		}

		_, err := loader.LoadRecipe(ctx, "https://example.com/soup")
		require.Error(t, err)
	})

	t.Run("extraction failure halts before matching", func(t *testing.T) {
		t.Parallel()

		loader := &scrape.Loader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "<html/>", nil },
			},
			Extractor: &mock.SchemaExtractor{
				ExtractFn: func(html string) (*scullery.InitialFetch, error) {
					return nil, scullery.Errorf(scullery.ENOTFOUND, "no recipe schema found on the page")
				},
			},
		}

		_, err := loader.LoadRecipe(ctx, "https://example.com/not-a-recipe")
		require.Error(t, err)
		assert.Equal(t, scullery.ENOTFOUND, scullery.ErrorCode(err))
	})
}
