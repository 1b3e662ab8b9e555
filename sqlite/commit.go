package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/scullery"
)

// CommitService implements scullery.CommitService using SQLite. The
// whole conversion runs inside one transaction so a failed commit
// leaves both the draft and the permanent tables untouched.
type CommitService struct {
	db *DB
}

// NewCommitService creates a new CommitService.
func NewCommitService(db *DB) *CommitService {
	return &CommitService{db: db}
}

// CommitConfirmableRecipe converts a staged draft into a permanent
// recipe and deletes the draft. Fails with EUNPROCESSABLE if any draft
// ingredient has no catalog reference, and with ENOTFOUND if the draft
// does not exist. Deleting the draft header inside the same transaction
// makes a second commit of the same draft fail with ENOTFOUND instead
// of double-committing.
func (s *CommitService) CommitConfirmableRecipe(ctx context.Context, id string) (*scullery.Recipe, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to begin transaction: %s", err)
	}
	defer tx.Rollback()

	draft, err := loadDraftTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	servings := 1
	if draft.Servings != nil {
		servings = *draft.Servings
	}

	recipe := &scullery.Recipe{
		ID:              uuid.New().String(),
		Name:            draft.Name,
		PrepTimeMinutes: draft.PrepTimeMinutes,
		CookTimeMinutes: draft.CookTimeMinutes,
		Servings:        servings,
		Notes:           "Source URL: " + draft.SourceURL,
		CreatedAt:       time.Now().UTC(),
	}

	for _, ing := range draft.Ingredients {
		if ing.IngredientID == nil {
			return nil, scullery.Errorf(scullery.EUNPROCESSABLE,
				"ingredient %q has no catalog reference", ing.SourceText)
		}
		recipe.Ingredients = append(recipe.Ingredients, &scullery.RecipeIngredient{
			IngredientID: *ing.IngredientID,
			Quantity:     ing.Quantity,
			Notes:        fmt.Sprintf("Original text: %s, Confidence: %.2f", ing.SourceText, ing.Confidence),
			Position:     ing.Position,
		})
	}

	for _, step := range draft.Steps {
		recipe.Steps = append(recipe.Steps, &scullery.RecipeStep{
			StepNumber:  step.StepNumber,
			Description: step.Description,
		})
	}

	if err := insertRecipeTx(ctx, tx, recipe); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM confirmable_recipe_ingredients WHERE confirmable_recipe_id = ?`, id); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to delete confirmable recipe ingredients: %s", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM confirmable_recipe_steps WHERE confirmable_recipe_id = ?`, id); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to delete confirmable recipe steps: %s", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM confirmable_recipes WHERE id = ?`, id); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to delete confirmable recipe: %s", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to commit transaction: %s", err)
	}

	return recipe, nil
}

// loadDraftTx reads the full draft aggregate inside the transaction.
// Rows are collected into slices before any further statements run, as
// the pool is limited to a single connection.
func loadDraftTx(ctx context.Context, tx *sql.Tx, id string) (*scullery.ConfirmableRecipe, error) {
	var draft scullery.ConfirmableRecipe
	var prep, cook, servings sql.NullInt64
	var createdAt string
	err := tx.QueryRowContext(ctx, `
		SELECT id, name, source_url, prep_time_minutes, cook_time_minutes, servings, description, created_at
		FROM confirmable_recipes
		WHERE id = ?
	`, id).Scan(&draft.ID, &draft.Name, &draft.SourceURL, &prep, &cook, &servings,
		&draft.Description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, scullery.Errorf(scullery.ENOTFOUND, "confirmable recipe not found: %s", id)
	} else if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to find confirmable recipe: %s", err)
	}
	draft.PrepTimeMinutes = intPtr(prep)
	draft.CookTimeMinutes = intPtr(cook)
	draft.Servings = intPtr(servings)
	if draft.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "%s", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT ingredient_id, quantity, confidence, source_text, position
		FROM confirmable_recipe_ingredients
		WHERE confirmable_recipe_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query confirmable recipe ingredients: %s", err)
	}
	for rows.Next() {
		var ing scullery.ConfirmableRecipeIngredient
		var ingredientID sql.NullString
		if err := rows.Scan(&ingredientID, &ing.Quantity, &ing.Confidence, &ing.SourceText, &ing.Position); err != nil {
			rows.Close()
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan confirmable recipe ingredient: %s", err)
		}
		ing.IngredientID = stringPtr(ingredientID)
		draft.Ingredients = append(draft.Ingredients, &ing)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate confirmable recipe ingredients: %s", err)
	}
	rows.Close()

	rows, err = tx.QueryContext(ctx, `
		SELECT step_number, description
		FROM confirmable_recipe_steps
		WHERE confirmable_recipe_id = ?
		ORDER BY step_number
	`, id)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query confirmable recipe steps: %s", err)
	}
	defer rows.Close()
	for rows.Next() {
		var step scullery.ConfirmableRecipeStep
		if err := rows.Scan(&step.StepNumber, &step.Description); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan confirmable recipe step: %s", err)
		}
		draft.Steps = append(draft.Steps, &step)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate confirmable recipe steps: %s", err)
	}

	return &draft, nil
}
