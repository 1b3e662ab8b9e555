package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scullery"
)

// Ensure LoggingLoader implements scullery.RecipeLoader.
var _ scullery.RecipeLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a RecipeLoader with debug logging.
type LoggingLoader struct {
	next   scullery.RecipeLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next scullery.RecipeLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// LoadRecipe delegates to the wrapped loader and logs the outcome.
func (l *LoggingLoader) LoadRecipe(ctx context.Context, url string) (draft *scullery.ConfirmableRecipe, err error) {
	defer func(begin time.Time) {
		name, ingredients, steps := "", 0, 0
		if draft != nil {
			name = draft.Name
			ingredients = len(draft.Ingredients)
			steps = len(draft.Steps)
		}
		l.logger.Info("scrape",
			"url", url,
			"name", name,
			"ingredients", ingredients,
			"steps", steps,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadRecipe(ctx, url)
}
