package main

import (
	"fmt"

	"github.com/fwojciec/scullery"
)

// Run executes the ingredient add command.
func (c *IngredientAddCmd) Run(deps *Dependencies) error {
	ingredient := &scullery.Ingredient{Name: c.Name}
	if err := deps.Ingredients.CreateIngredient(deps.Ctx, ingredient); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added ingredient %q (%s)\n", ingredient.Name, ingredient.ID)
	return nil
}

// Run executes the ingredient list command.
func (c *IngredientListCmd) Run(deps *Dependencies) error {
	var ingredients []*scullery.Ingredient
	var err error
	if c.Contains != "" {
		ingredients, err = deps.Ingredients.FindIngredientsByNameContaining(deps.Ctx, c.Contains)
	} else {
		ingredients, err = deps.Ingredients.FindIngredients(deps.Ctx, scullery.IngredientFilter{})
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	if len(ingredients) == 0 {
		fmt.Fprintln(deps.Stdout, "No ingredients found. Use 'scullery ingredient add' to create one.")
		return nil
	}

	for _, ing := range ingredients {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", ing.ID, ing.Name)
	}

	return nil
}

// Run executes the ingredient remove command.
func (c *IngredientRemoveCmd) Run(deps *Dependencies) error {
	ingredient, err := deps.Ingredients.FindIngredientByName(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	if err := deps.Ingredients.DeleteIngredient(deps.Ctx, ingredient.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed ingredient %q\n", ingredient.Name)
	return nil
}
