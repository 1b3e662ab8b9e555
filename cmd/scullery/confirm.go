package main

import (
	"fmt"

	"github.com/fwojciec/scullery"
)

// Run executes the confirm command.
func (c *ConfirmCmd) Run(deps *Dependencies) error {
	recipe, err := deps.Commits.CommitConfirmableRecipe(deps.Ctx, c.ID)
	if err != nil {
		if scullery.ErrorCode(err) == scullery.EUNPROCESSABLE {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
			fmt.Fprintf(deps.Stderr, "Hint: add the missing ingredient with 'scullery ingredient add' and re-scrape, or reject the draft\n")
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Committed %q (%s)\n", recipe.Name, recipe.ID)
	return nil
}

// Run executes the reject command.
func (c *RejectCmd) Run(deps *Dependencies) error {
	if err := deps.Confirmables.DeleteConfirmableRecipe(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Rejected draft %s\n", c.ID)
	return nil
}
