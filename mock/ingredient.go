package mock

import (
	"context"

	"github.com/fwojciec/scullery"
)

var _ scullery.IngredientService = (*IngredientService)(nil)

// IngredientService is a mock implementation of scullery.IngredientService.
type IngredientService struct {
	CreateIngredientFn                func(ctx context.Context, ingredient *scullery.Ingredient) error
	FindIngredientByIDFn              func(ctx context.Context, id string) (*scullery.Ingredient, error)
	FindIngredientByNameFn            func(ctx context.Context, name string) (*scullery.Ingredient, error)
	FindIngredientsByNameContainingFn func(ctx context.Context, substring string) ([]*scullery.Ingredient, error)
	FindIngredientsFn                 func(ctx context.Context, filter scullery.IngredientFilter) ([]*scullery.Ingredient, error)
	UpdateIngredientFn                func(ctx context.Context, id string, upd scullery.IngredientUpdate) (*scullery.Ingredient, error)
	DeleteIngredientFn                func(ctx context.Context, id string) error
}

func (s *IngredientService) CreateIngredient(ctx context.Context, ingredient *scullery.Ingredient) error {
	return s.CreateIngredientFn(ctx, ingredient)
}

func (s *IngredientService) FindIngredientByID(ctx context.Context, id string) (*scullery.Ingredient, error) {
	return s.FindIngredientByIDFn(ctx, id)
}

func (s *IngredientService) FindIngredientByName(ctx context.Context, name string) (*scullery.Ingredient, error) {
	return s.FindIngredientByNameFn(ctx, name)
}

func (s *IngredientService) FindIngredientsByNameContaining(ctx context.Context, substring string) ([]*scullery.Ingredient, error) {
	return s.FindIngredientsByNameContainingFn(ctx, substring)
}

func (s *IngredientService) FindIngredients(ctx context.Context, filter scullery.IngredientFilter) ([]*scullery.Ingredient, error) {
	return s.FindIngredientsFn(ctx, filter)
}

func (s *IngredientService) UpdateIngredient(ctx context.Context, id string, upd scullery.IngredientUpdate) (*scullery.Ingredient, error) {
	return s.UpdateIngredientFn(ctx, id, upd)
}

func (s *IngredientService) DeleteIngredient(ctx context.Context, id string) error {
	return s.DeleteIngredientFn(ctx, id)
}
