package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/scullery"
)

// ConfirmableRecipeService implements scullery.ConfirmableRecipeService
// using SQLite.
type ConfirmableRecipeService struct {
	db *DB
}

// NewConfirmableRecipeService creates a new ConfirmableRecipeService.
func NewConfirmableRecipeService(db *DB) *ConfirmableRecipeService {
	return &ConfirmableRecipeService{db: db}
}

// CreateConfirmableRecipe creates the draft header plus its ingredient
// and step rows. Rows are written sequentially without a transaction;
// a partially written draft is still reviewable.
func (s *ConfirmableRecipeService) CreateConfirmableRecipe(ctx context.Context, recipe *scullery.ConfirmableRecipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	recipe.ID = uuid.New().String()
	recipe.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confirmable_recipes
			(id, name, source_url, prep_time_minutes, cook_time_minutes, servings, description, page_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, recipe.ID, recipe.Name, recipe.SourceURL,
		nullInt(recipe.PrepTimeMinutes), nullInt(recipe.CookTimeMinutes), nullInt(recipe.Servings),
		recipe.Description, recipe.PageHash, formatTime(recipe.CreatedAt))
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to create confirmable recipe: %s", err)
	}

	for _, ing := range recipe.Ingredients {
		ing.ID = uuid.New().String()
		ing.ConfirmableRecipeID = recipe.ID
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO confirmable_recipe_ingredients
				(id, confirmable_recipe_id, ingredient_id, quantity, confidence, source_text, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, ing.ID, ing.ConfirmableRecipeID, nullString(ing.IngredientID),
			ing.Quantity, ing.Confidence, ing.SourceText, ing.Position)
		if err != nil {
			return scullery.Errorf(scullery.EINTERNAL, "failed to create confirmable recipe ingredient: %s", err)
		}
	}

	for _, step := range recipe.Steps {
		step.ID = uuid.New().String()
		step.ConfirmableRecipeID = recipe.ID
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO confirmable_recipe_steps
				(id, confirmable_recipe_id, step_number, description)
			VALUES (?, ?, ?, ?)
		`, step.ID, step.ConfirmableRecipeID, step.StepNumber, step.Description)
		if err != nil {
			return scullery.Errorf(scullery.EINTERNAL, "failed to create confirmable recipe step: %s", err)
		}
	}

	return nil
}

// FindConfirmableRecipeByID retrieves a draft aggregate by ID.
func (s *ConfirmableRecipeService) FindConfirmableRecipeByID(ctx context.Context, id string) (*scullery.ConfirmableRecipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_url, prep_time_minutes, cook_time_minutes, servings, description, page_hash, created_at
		FROM confirmable_recipes
		WHERE id = ?
	`, id)

	recipe, err := scanConfirmableRecipe(row)
	if err == sql.ErrNoRows {
		return nil, scullery.Errorf(scullery.ENOTFOUND, "confirmable recipe not found: %s", id)
	} else if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to find confirmable recipe: %s", err)
	}

	if recipe.Ingredients, err = s.findIngredientRows(ctx, id); err != nil {
		return nil, err
	}
	if recipe.Steps, err = s.findStepRows(ctx, id); err != nil {
		return nil, err
	}

	return recipe, nil
}

// FindConfirmableRecipes retrieves draft headers matching the filter,
// newest first. Ingredient and step rows are not populated.
func (s *ConfirmableRecipeService) FindConfirmableRecipes(ctx context.Context, filter scullery.ConfirmableRecipeFilter) ([]*scullery.ConfirmableRecipe, error) {
	where, args := []string{"1 = 1"}, []any{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		where, args = append(where, "source_url = ?"), append(args, *filter.SourceURL)
	}

	query := `
		SELECT id, name, source_url, prep_time_minutes, cook_time_minutes, servings, description, page_hash, created_at
		FROM confirmable_recipes
		WHERE ` + joinWhere(where) + `
		ORDER BY created_at DESC, id`
	query, args = appendPagination(query, args, filter.Offset, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query confirmable recipes: %s", err)
	}
	defer rows.Close()

	recipes := []*scullery.ConfirmableRecipe{}
	for rows.Next() {
		var recipe scullery.ConfirmableRecipe
		var prep, cook, servings sql.NullInt64
		var createdAt string
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.SourceURL, &prep, &cook, &servings,
			&recipe.Description, &recipe.PageHash, &createdAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan confirmable recipe: %s", err)
		}
		recipe.PrepTimeMinutes = intPtr(prep)
		recipe.CookTimeMinutes = intPtr(cook)
		recipe.Servings = intPtr(servings)
		if recipe.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "%s", err)
		}
		recipes = append(recipes, &recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate confirmable recipes: %s", err)
	}

	return recipes, nil
}

// DeleteConfirmableRecipe removes a draft and its rows. This is the
// reject path.
func (s *ConfirmableRecipeService) DeleteConfirmableRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM confirmable_recipes WHERE id = ?`, id)
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to delete confirmable recipe: %s", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to get rows affected: %s", err)
	}
	if affected == 0 {
		return scullery.Errorf(scullery.ENOTFOUND, "confirmable recipe not found: %s", id)
	}

	return nil
}

// findIngredientRows loads a draft's ingredient rows in position order.
func (s *ConfirmableRecipeService) findIngredientRows(ctx context.Context, recipeID string) ([]*scullery.ConfirmableRecipeIngredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, confirmable_recipe_id, ingredient_id, quantity, confidence, source_text, position
		FROM confirmable_recipe_ingredients
		WHERE confirmable_recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query confirmable recipe ingredients: %s", err)
	}
	defer rows.Close()

	ingredients := []*scullery.ConfirmableRecipeIngredient{}
	for rows.Next() {
		var ing scullery.ConfirmableRecipeIngredient
		var ingredientID sql.NullString
		if err := rows.Scan(&ing.ID, &ing.ConfirmableRecipeID, &ingredientID,
			&ing.Quantity, &ing.Confidence, &ing.SourceText, &ing.Position); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan confirmable recipe ingredient: %s", err)
		}
		ing.IngredientID = stringPtr(ingredientID)
		ingredients = append(ingredients, &ing)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate confirmable recipe ingredients: %s", err)
	}

	return ingredients, nil
}

// findStepRows loads a draft's step rows in step number order.
func (s *ConfirmableRecipeService) findStepRows(ctx context.Context, recipeID string) ([]*scullery.ConfirmableRecipeStep, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, confirmable_recipe_id, step_number, description
		FROM confirmable_recipe_steps
		WHERE confirmable_recipe_id = ?
		ORDER BY step_number
	`, recipeID)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query confirmable recipe steps: %s", err)
	}
	defer rows.Close()

	steps := []*scullery.ConfirmableRecipeStep{}
	for rows.Next() {
		var step scullery.ConfirmableRecipeStep
		if err := rows.Scan(&step.ID, &step.ConfirmableRecipeID, &step.StepNumber, &step.Description); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan confirmable recipe step: %s", err)
		}
		steps = append(steps, &step)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate confirmable recipe steps: %s", err)
	}

	return steps, nil
}

// scanConfirmableRecipe reads a single draft header row.
func scanConfirmableRecipe(row *sql.Row) (*scullery.ConfirmableRecipe, error) {
	var recipe scullery.ConfirmableRecipe
	var prep, cook, servings sql.NullInt64
	var createdAt string
	if err := row.Scan(&recipe.ID, &recipe.Name, &recipe.SourceURL, &prep, &cook, &servings,
		&recipe.Description, &recipe.PageHash, &createdAt); err != nil {
		return nil, err
	}

	recipe.PrepTimeMinutes = intPtr(prep)
	recipe.CookTimeMinutes = intPtr(cook)
	recipe.Servings = intPtr(servings)

	var err error
	if recipe.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return &recipe, nil
}
