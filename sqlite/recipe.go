package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/scullery"
)

// RecipeService implements scullery.RecipeService using SQLite.
type RecipeService struct {
	db *DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a recipe together with its ingredient and step
// rows as one atomic unit.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *scullery.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to begin transaction: %s", err)
	}
	defer tx.Rollback()

	recipe.ID = uuid.New().String()
	recipe.CreatedAt = time.Now().UTC()
	if err := insertRecipeTx(ctx, tx, recipe); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to commit transaction: %s", err)
	}
	return nil
}

// insertRecipeTx writes the recipe aggregate inside an open transaction.
// The commit pipeline shares this with CreateRecipe.
func insertRecipeTx(ctx context.Context, tx *sql.Tx, recipe *scullery.Recipe) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (id, name, prep_time_minutes, cook_time_minutes, servings, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, recipe.ID, recipe.Name, nullInt(recipe.PrepTimeMinutes), nullInt(recipe.CookTimeMinutes),
		recipe.Servings, recipe.Notes, formatTime(recipe.CreatedAt))
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to create recipe: %s", err)
	}

	for _, ing := range recipe.Ingredients {
		ing.ID = uuid.New().String()
		ing.RecipeID = recipe.ID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, quantity, notes, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, ing.ID, ing.RecipeID, ing.IngredientID, ing.Quantity, ing.Notes, ing.Position)
		if err != nil {
			return scullery.Errorf(scullery.EINTERNAL, "failed to create recipe ingredient: %s", err)
		}
	}

	for _, step := range recipe.Steps {
		step.ID = uuid.New().String()
		step.RecipeID = recipe.ID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_steps (id, recipe_id, step_number, description)
			VALUES (?, ?, ?, ?)
		`, step.ID, step.RecipeID, step.StepNumber, step.Description)
		if err != nil {
			return scullery.Errorf(scullery.EINTERNAL, "failed to create recipe step: %s", err)
		}
	}

	return nil
}

// FindRecipeByID retrieves a recipe aggregate by ID.
func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*scullery.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, prep_time_minutes, cook_time_minutes, servings, notes, created_at
		FROM recipes
		WHERE id = ?
	`, id)

	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, scullery.Errorf(scullery.ENOTFOUND, "recipe not found: %s", id)
	} else if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to find recipe: %s", err)
	}

	if recipe.Ingredients, err = s.findIngredientRows(ctx, id); err != nil {
		return nil, err
	}
	if recipe.Steps, err = s.findStepRows(ctx, id); err != nil {
		return nil, err
	}

	return recipe, nil
}

// FindRecipes retrieves recipe headers matching the filter, newest
// first. Ingredient and step rows are not populated.
func (s *RecipeService) FindRecipes(ctx context.Context, filter scullery.RecipeFilter) ([]*scullery.Recipe, error) {
	where, args := []string{"1 = 1"}, []any{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.Name != nil {
		where, args = append(where, "name = ? COLLATE NOCASE"), append(args, *filter.Name)
	}

	query := `
		SELECT id, name, prep_time_minutes, cook_time_minutes, servings, notes, created_at
		FROM recipes
		WHERE ` + joinWhere(where) + `
		ORDER BY created_at DESC, id`
	query, args = appendPagination(query, args, filter.Offset, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query recipes: %s", err)
	}
	defer rows.Close()

	recipes := []*scullery.Recipe{}
	for rows.Next() {
		var recipe scullery.Recipe
		var prep, cook sql.NullInt64
		var createdAt string
		if err := rows.Scan(&recipe.ID, &recipe.Name, &prep, &cook, &recipe.Servings,
			&recipe.Notes, &createdAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan recipe: %s", err)
		}
		recipe.PrepTimeMinutes = intPtr(prep)
		recipe.CookTimeMinutes = intPtr(cook)
		if recipe.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "%s", err)
		}
		recipes = append(recipes, &recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate recipes: %s", err)
	}

	return recipes, nil
}

// DeleteRecipe removes a recipe and its rows.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to delete recipe: %s", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to get rows affected: %s", err)
	}
	if affected == 0 {
		return scullery.Errorf(scullery.ENOTFOUND, "recipe not found: %s", id)
	}

	return nil
}

// findIngredientRows loads a recipe's ingredient rows in position order.
func (s *RecipeService) findIngredientRows(ctx context.Context, recipeID string) ([]*scullery.RecipeIngredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipe_id, ingredient_id, quantity, notes, position
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query recipe ingredients: %s", err)
	}
	defer rows.Close()

	ingredients := []*scullery.RecipeIngredient{}
	for rows.Next() {
		var ing scullery.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.IngredientID, &ing.Quantity, &ing.Notes, &ing.Position); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan recipe ingredient: %s", err)
		}
		ingredients = append(ingredients, &ing)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate recipe ingredients: %s", err)
	}

	return ingredients, nil
}

// findStepRows loads a recipe's step rows in step number order.
func (s *RecipeService) findStepRows(ctx context.Context, recipeID string) ([]*scullery.RecipeStep, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipe_id, step_number, description
		FROM recipe_steps
		WHERE recipe_id = ?
		ORDER BY step_number
	`, recipeID)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query recipe steps: %s", err)
	}
	defer rows.Close()

	steps := []*scullery.RecipeStep{}
	for rows.Next() {
		var step scullery.RecipeStep
		if err := rows.Scan(&step.ID, &step.RecipeID, &step.StepNumber, &step.Description); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan recipe step: %s", err)
		}
		steps = append(steps, &step)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate recipe steps: %s", err)
	}

	return steps, nil
}

// scanRecipe reads a single recipe header row.
func scanRecipe(row *sql.Row) (*scullery.Recipe, error) {
	var recipe scullery.Recipe
	var prep, cook sql.NullInt64
	var createdAt string
	if err := row.Scan(&recipe.ID, &recipe.Name, &prep, &cook, &recipe.Servings,
		&recipe.Notes, &createdAt); err != nil {
		return nil, err
	}

	recipe.PrepTimeMinutes = intPtr(prep)
	recipe.CookTimeMinutes = intPtr(cook)

	var err error
	if recipe.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return &recipe, nil
}
