package mock

import (
	"context"

	"github.com/fwojciec/scullery"
)

var _ scullery.RecipeLoader = (*RecipeLoader)(nil)

// RecipeLoader is a mock implementation of scullery.RecipeLoader.
type RecipeLoader struct {
	LoadRecipeFn func(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error)
}

func (l *RecipeLoader) LoadRecipe(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
	return l.LoadRecipeFn(ctx, url)
}
