package main

import (
	"fmt"

	"github.com/fwojciec/scullery"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	draft, err := deps.Loader.LoadRecipe(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	resolved := 0
	for _, ing := range draft.Ingredients {
		if ing.IngredientID != nil {
			resolved++
		}
	}

	fmt.Fprintf(deps.Stdout, "Staged %q (%s)\n", draft.Name, draft.ID)
	fmt.Fprintf(deps.Stdout, "  %d/%d ingredients resolved, %d steps\n",
		resolved, len(draft.Ingredients), len(draft.Steps))
	fmt.Fprintf(deps.Stdout, "Review with 'scullery show %s'\n", draft.ID)

	return nil
}
