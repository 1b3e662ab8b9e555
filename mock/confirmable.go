package mock

import (
	"context"

	"github.com/fwojciec/scullery"
)

var _ scullery.ConfirmableRecipeService = (*ConfirmableRecipeService)(nil)

// ConfirmableRecipeService is a mock implementation of
// scullery.ConfirmableRecipeService.
type ConfirmableRecipeService struct {
	CreateConfirmableRecipeFn   func(ctx context.Context, recipe *scullery.ConfirmableRecipe) error
	FindConfirmableRecipeByIDFn func(ctx context.Context, id string) (*scullery.ConfirmableRecipe, error)
	FindConfirmableRecipesFn    func(ctx context.Context, filter scullery.ConfirmableRecipeFilter) ([]*scullery.ConfirmableRecipe, error)
	DeleteConfirmableRecipeFn   func(ctx context.Context, id string) error
}

func (s *ConfirmableRecipeService) CreateConfirmableRecipe(ctx context.Context, recipe *scullery.ConfirmableRecipe) error {
	return s.CreateConfirmableRecipeFn(ctx, recipe)
}

func (s *ConfirmableRecipeService) FindConfirmableRecipeByID(ctx context.Context, id string) (*scullery.ConfirmableRecipe, error) {
	return s.FindConfirmableRecipeByIDFn(ctx, id)
}

func (s *ConfirmableRecipeService) FindConfirmableRecipes(ctx context.Context, filter scullery.ConfirmableRecipeFilter) ([]*scullery.ConfirmableRecipe, error) {
	return s.FindConfirmableRecipesFn(ctx, filter)
}

func (s *ConfirmableRecipeService) DeleteConfirmableRecipe(ctx context.Context, id string) error {
	return s.DeleteConfirmableRecipeFn(ctx, id)
}

var _ scullery.CommitService = (*CommitService)(nil)

// CommitService is a mock implementation of scullery.CommitService.
type CommitService struct {
	CommitConfirmableRecipeFn func(ctx context.Context, id string) (*scullery.Recipe, error)
}

func (s *CommitService) CommitConfirmableRecipe(ctx context.Context, id string) (*scullery.Recipe, error) {
	return s.CommitConfirmableRecipeFn(ctx, id)
}
