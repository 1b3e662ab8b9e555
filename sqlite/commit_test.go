package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/sqlite"
)

func TestCommitService_CommitConfirmableRecipe(t *testing.T) {
	t.Parallel()

	t.Run("converts draft into permanent recipe and deletes draft", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		onion := createTestIngredient(t, db, "Yellow Onion")
		salt := createTestIngredient(t, db, "Salt")
		prep, cook, servings := 10, 30, 4
		draft := createTestDraft(t, db, &scullery.ConfirmableRecipe{
			Name:            "Onion Soup",
			SourceURL:       "https://example.com/recipes/onion-soup",
			PrepTimeMinutes: &prep,
			CookTimeMinutes: &cook,
			Servings:        &servings,
			Ingredients: []*scullery.ConfirmableRecipeIngredient{
				{IngredientID: &onion.ID, Quantity: 2, Confidence: 1, SourceText: "2 yellow onions", Position: 0},
				{IngredientID: &salt.ID, Quantity: 0.5, Confidence: 0.67, SourceText: "1/2 tsp salt", Position: 1},
			},
			Steps: []*scullery.ConfirmableRecipeStep{
				{StepNumber: 1, Description: "Slice."},
				{StepNumber: 2, Description: "Simmer."},
			},
		})
		svc := sqlite.NewCommitService(db)
		ctx := context.Background()

		recipe, err := svc.CommitConfirmableRecipe(ctx, draft.ID)
		require.NoError(t, err)

		assert.Equal(t, "Onion Soup", recipe.Name)
		require.NotNil(t, recipe.PrepTimeMinutes)
		assert.Equal(t, 10, *recipe.PrepTimeMinutes)
		require.NotNil(t, recipe.CookTimeMinutes)
		assert.Equal(t, 30, *recipe.CookTimeMinutes)
		assert.Equal(t, 4, recipe.Servings)
		assert.Equal(t, "Source URL: https://example.com/recipes/onion-soup", recipe.Notes)

		require.Len(t, recipe.Ingredients, 2)
		assert.Equal(t, onion.ID, recipe.Ingredients[0].IngredientID)
		assert.Equal(t, "Original text: 2 yellow onions, Confidence: 1.00", recipe.Ingredients[0].Notes)
		assert.Equal(t, "Original text: 1/2 tsp salt, Confidence: 0.67", recipe.Ingredients[1].Notes)

		require.Len(t, recipe.Steps, 2)
		assert.Equal(t, 1, recipe.Steps[0].StepNumber)

		// The permanent recipe is readable back as a full aggregate.
		found, err := sqlite.NewRecipeService(db).FindRecipeByID(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Len(t, found.Ingredients, 2)
		assert.Len(t, found.Steps, 2)

		// The draft and its rows are gone.
		_, err = sqlite.NewConfirmableRecipeService(db).FindConfirmableRecipeByID(ctx, draft.ID)
		assert.Equal(t, scullery.ENOTFOUND, scullery.ErrorCode(err))
		var rowCount int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM confirmable_recipe_ingredients`).Scan(&rowCount))
		assert.Zero(t, rowCount)
	})

	t.Run("defaults servings to one when absent", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		draft := createTestDraft(t, db, &scullery.ConfirmableRecipe{Name: "Soup"})
		svc := sqlite.NewCommitService(db)

		recipe, err := svc.CommitConfirmableRecipe(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, recipe.Servings)
	})

	t.Run("fails with EUNPROCESSABLE when a line is unresolved", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		onion := createTestIngredient(t, db, "Yellow Onion")
		draft := createTestDraft(t, db, &scullery.ConfirmableRecipe{
			Name: "Soup",
			Ingredients: []*scullery.ConfirmableRecipeIngredient{
				{IngredientID: &onion.ID, Quantity: 2, Confidence: 1, SourceText: "2 onions", Position: 0},
				{Quantity: 1, Confidence: 0, SourceText: "1 mystery cube", Position: 1},
			},
		})
		svc := sqlite.NewCommitService(db)
		ctx := context.Background()

		_, err := svc.CommitConfirmableRecipe(ctx, draft.ID)
		require.Error(t, err)
		assert.Equal(t, scullery.EUNPROCESSABLE, scullery.ErrorCode(err))
		assert.Contains(t, scullery.ErrorMessage(err), "1 mystery cube")

		// Nothing was committed: no permanent rows, draft intact.
		var recipeCount int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&recipeCount))
		assert.Zero(t, recipeCount)

		found, err := sqlite.NewConfirmableRecipeService(db).FindConfirmableRecipeByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Len(t, found.Ingredients, 2)
	})

	t.Run("returns ENOTFOUND for missing draft", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCommitService(db)

		_, err := svc.CommitConfirmableRecipe(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, scullery.ENOTFOUND, scullery.ErrorCode(err))
	})

	t.Run("second commit of same draft returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		draft := createTestDraft(t, db, &scullery.ConfirmableRecipe{Name: "Soup"})
		svc := sqlite.NewCommitService(db)
		ctx := context.Background()

		_, err := svc.CommitConfirmableRecipe(ctx, draft.ID)
		require.NoError(t, err)

		_, err = svc.CommitConfirmableRecipe(ctx, draft.ID)
		require.Error(t, err)
		assert.Equal(t, scullery.ENOTFOUND, scullery.ErrorCode(err))

		var recipeCount int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&recipeCount))
		assert.Equal(t, 1, recipeCount, "draft commits at most once")
	})
}
