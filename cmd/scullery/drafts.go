package main

import (
	"fmt"

	"github.com/fwojciec/scullery"
)

// Run executes the drafts command.
func (c *DraftsCmd) Run(deps *Dependencies) error {
	drafts, err := deps.Confirmables.FindConfirmableRecipes(deps.Ctx, scullery.ConfirmableRecipeFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	if len(drafts) == 0 {
		fmt.Fprintln(deps.Stdout, "No drafts staged. Use 'scullery scrape' or 'scullery import' to create some.")
		return nil
	}

	for _, d := range drafts {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", d.ID, d.Name, d.SourceURL)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	draft, err := deps.Confirmables.FindConfirmableRecipeByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n", draft.Name)
	fmt.Fprintf(deps.Stdout, "  Source: %s\n", draft.SourceURL)
	if draft.PrepTimeMinutes != nil {
		fmt.Fprintf(deps.Stdout, "  Prep: %d min\n", *draft.PrepTimeMinutes)
	}
	if draft.CookTimeMinutes != nil {
		fmt.Fprintf(deps.Stdout, "  Cook: %d min\n", *draft.CookTimeMinutes)
	}
	if draft.Servings != nil {
		fmt.Fprintf(deps.Stdout, "  Servings: %d\n", *draft.Servings)
	}

	fmt.Fprintln(deps.Stdout, "Ingredients:")
	for _, ing := range draft.Ingredients {
		status := "unresolved"
		if ing.IngredientID != nil {
			status = fmt.Sprintf("-> %s (%.2f)", *ing.IngredientID, ing.Confidence)
		}
		fmt.Fprintf(deps.Stdout, "  %s  %s\n", ing.SourceText, status)
	}

	fmt.Fprintln(deps.Stdout, "Steps:")
	for _, step := range draft.Steps {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", step.StepNumber, step.Description)
	}

	return nil
}
