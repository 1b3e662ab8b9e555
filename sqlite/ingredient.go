package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/scullery"
)

// IngredientService implements scullery.IngredientService using SQLite.
type IngredientService struct {
	db *DB
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(db *DB) *IngredientService {
	return &IngredientService{db: db}
}

// CreateIngredient creates a new catalog ingredient. Names are unique
// case-insensitively; a duplicate returns ECONFLICT.
func (s *IngredientService) CreateIngredient(ctx context.Context, ingredient *scullery.Ingredient) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ingredients WHERE name = ? COLLATE NOCASE
	`, ingredient.Name).Scan(&exists)
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to check for existing ingredient: %s", err)
	}
	if exists > 0 {
		return scullery.Errorf(scullery.ECONFLICT, "ingredient with name %q already exists", ingredient.Name)
	}

	ingredient.ID = uuid.New().String()
	now := time.Now().UTC()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, ingredient.ID, ingredient.Name, formatTime(now), formatTime(now))
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to create ingredient: %s", err)
	}

	return nil
}

// FindIngredientByID retrieves an ingredient by ID.
func (s *IngredientService) FindIngredientByID(ctx context.Context, id string) (*scullery.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM ingredients
		WHERE id = ?
	`, id)

	ingredient, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, scullery.Errorf(scullery.ENOTFOUND, "ingredient not found: %s", id)
	} else if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to find ingredient: %s", err)
	}

	return ingredient, nil
}

// FindIngredientByName retrieves an ingredient by exact name,
// case-insensitively.
func (s *IngredientService) FindIngredientByName(ctx context.Context, name string) (*scullery.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM ingredients
		WHERE name = ? COLLATE NOCASE
	`, name)

	ingredient, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, scullery.Errorf(scullery.ENOTFOUND, "ingredient not found: %s", name)
	} else if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to find ingredient: %s", err)
	}

	return ingredient, nil
}

// FindIngredientsByNameContaining retrieves all ingredients whose name
// contains the given substring, ordered by name.
func (s *IngredientService) FindIngredientsByNameContaining(ctx context.Context, substr string) ([]*scullery.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM ingredients
		WHERE name LIKE '%' || ? || '%'
		ORDER BY name
	`, substr)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query ingredients: %s", err)
	}
	defer rows.Close()

	return collectIngredients(rows)
}

// FindIngredients retrieves ingredients matching the filter, ordered by
// name.
func (s *IngredientService) FindIngredients(ctx context.Context, filter scullery.IngredientFilter) ([]*scullery.Ingredient, error) {
	where, args := []string{"1 = 1"}, []any{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.Name != nil {
		where, args = append(where, "name = ? COLLATE NOCASE"), append(args, *filter.Name)
	}

	query := `
		SELECT id, name, created_at, updated_at
		FROM ingredients
		WHERE ` + joinWhere(where) + `
		ORDER BY name`
	query, args = appendPagination(query, args, filter.Offset, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to query ingredients: %s", err)
	}
	defer rows.Close()

	return collectIngredients(rows)
}

// UpdateIngredient applies the update to an existing ingredient.
func (s *IngredientService) UpdateIngredient(ctx context.Context, id string, upd scullery.IngredientUpdate) (*scullery.Ingredient, error) {
	ingredient, err := s.FindIngredientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		ingredient.Name = *upd.Name
	}
	if err := ingredient.Validate(); err != nil {
		return nil, err
	}

	var conflict int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ingredients WHERE name = ? COLLATE NOCASE AND id != ?
	`, ingredient.Name, id).Scan(&conflict)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to check for existing ingredient: %s", err)
	}
	if conflict > 0 {
		return nil, scullery.Errorf(scullery.ECONFLICT, "ingredient with name %q already exists", ingredient.Name)
	}

	ingredient.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		UPDATE ingredients SET name = ?, updated_at = ? WHERE id = ?
	`, ingredient.Name, formatTime(ingredient.UpdatedAt), id)
	if err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to update ingredient: %s", err)
	}

	return ingredient, nil
}

// DeleteIngredient removes an ingredient from the catalog.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to delete ingredient: %s", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return scullery.Errorf(scullery.EINTERNAL, "failed to get rows affected: %s", err)
	}
	if affected == 0 {
		return scullery.Errorf(scullery.ENOTFOUND, "ingredient not found: %s", id)
	}

	return nil
}

// scanIngredient reads a single ingredient row.
func scanIngredient(row *sql.Row) (*scullery.Ingredient, error) {
	var ingredient scullery.Ingredient
	var createdAt, updatedAt string
	if err := row.Scan(&ingredient.ID, &ingredient.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if ingredient.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if ingredient.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &ingredient, nil
}

// collectIngredients reads all ingredient rows from a result set.
func collectIngredients(rows *sql.Rows) ([]*scullery.Ingredient, error) {
	ingredients := []*scullery.Ingredient{}
	for rows.Next() {
		var ingredient scullery.Ingredient
		var createdAt, updatedAt string
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &createdAt, &updatedAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "failed to scan ingredient: %s", err)
		}
		var err error
		if ingredient.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "%s", err)
		}
		if ingredient.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, scullery.Errorf(scullery.EINTERNAL, "%s", err)
		}
		ingredients = append(ingredients, &ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, scullery.Errorf(scullery.EINTERNAL, "failed to iterate ingredients: %s", err)
	}
	return ingredients, nil
}
