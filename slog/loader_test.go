package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/mock"
	scslog "github.com/fwojciec/scullery/slog"
)

func TestLoggingLoader_LoadRecipe(t *testing.T) {
	t.Parallel()

	t.Run("logs draft name and row counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecipeLoader{
			LoadRecipeFn: func(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
				return &scullery.ConfirmableRecipe{
					Name: "Onion Soup",
					Ingredients: []*scullery.ConfirmableRecipeIngredient{
						{SourceText: "2 onions"},
					},
					Steps: []*scullery.ConfirmableRecipeStep{
						{StepNumber: 1, Description: "Simmer."},
						{StepNumber: 2, Description: "Serve."},
					},
				}, nil
			},
		}

		loader := scslog.NewLoggingLoader(inner, logger)
		draft, err := loader.LoadRecipe(context.Background(), "https://example.com/recipes/soup")

		require.NoError(t, err)
		assert.Equal(t, "Onion Soup", draft.Name)
		output := buf.String()
		assert.Contains(t, output, "scrape")
		assert.Contains(t, output, "url=https://example.com/recipes/soup")
		assert.Contains(t, output, "name=\"Onion Soup\"")
		assert.Contains(t, output, "ingredients=1")
		assert.Contains(t, output, "steps=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecipeLoader{
			LoadRecipeFn: func(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
				return nil, scullery.Errorf(scullery.ENOTFOUND, "no recipe schema found on the page")
			},
		}

		loader := scslog.NewLoggingLoader(inner, logger)
		_, err := loader.LoadRecipe(context.Background(), "https://example.com/about")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "scrape")
		assert.Contains(t, output, "no recipe schema found")
	})
}
