package main

import (
	"fmt"

	"github.com/fwojciec/scullery"
)

// Run executes the recipes command.
func (c *RecipesCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.showRecipe(deps)
	}

	recipes, err := deps.Recipes.FindRecipes(deps.Ctx, scullery.RecipeFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	if len(recipes) == 0 {
		fmt.Fprintln(deps.Stdout, "No recipes yet. Use 'scullery confirm' to commit a draft.")
		return nil
	}

	for _, r := range recipes {
		fmt.Fprintf(deps.Stdout, "%s  %s  (serves %d)\n", r.ID, r.Name, r.Servings)
	}

	return nil
}

func (c *RecipesCmd) showRecipe(deps *Dependencies) error {
	recipe, err := deps.Recipes.FindRecipeByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n", recipe.Name)
	if recipe.PrepTimeMinutes != nil {
		fmt.Fprintf(deps.Stdout, "  Prep: %d min\n", *recipe.PrepTimeMinutes)
	}
	if recipe.CookTimeMinutes != nil {
		fmt.Fprintf(deps.Stdout, "  Cook: %d min\n", *recipe.CookTimeMinutes)
	}
	fmt.Fprintf(deps.Stdout, "  Servings: %d\n", recipe.Servings)
	if recipe.Notes != "" {
		fmt.Fprintf(deps.Stdout, "  Notes: %s\n", recipe.Notes)
	}

	fmt.Fprintln(deps.Stdout, "Ingredients:")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(deps.Stdout, "  %g x %s  (%s)\n", ing.Quantity, ing.IngredientID, ing.Notes)
	}

	fmt.Fprintln(deps.Stdout, "Steps:")
	for _, step := range recipe.Steps {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", step.StepNumber, step.Description)
	}

	return nil
}
