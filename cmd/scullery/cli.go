package main

import (
	"context"
	"io"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/scrape"
	"github.com/fwojciec/scullery/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	DB           *sqlite.DB
	Ingredients  scullery.IngredientService
	Recipes      scullery.RecipeService
	Confirmables scullery.ConfirmableRecipeService
	Commits      scullery.CommitService
	Sitemaps     scullery.SitemapService
	Loader       scullery.RecipeLoader
	Importer     *scrape.Importer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log pipeline activity to stderr"`

	Scrape     ScrapeCmd     `cmd:"" help:"Scrape a recipe page and stage a draft for review"`
	Import     ImportCmd     `cmd:"" help:"Import every recipe page found in a site's sitemap"`
	Drafts     DraftsCmd     `cmd:"" help:"List staged drafts awaiting review"`
	Show       ShowCmd       `cmd:"" help:"Show a staged draft in full"`
	Confirm    ConfirmCmd    `cmd:"" help:"Commit a staged draft as a permanent recipe"`
	Reject     RejectCmd     `cmd:"" help:"Delete a staged draft"`
	Ingredient IngredientCmd `cmd:"" help:"Manage the ingredient catalog"`
	Recipes    RecipesCmd    `cmd:"" help:"List committed recipes"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL string `arg:"" help:"Recipe page URL"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URL         string   `arg:"" help:"Site base URL"`
	Filter      []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	Exclude     []string `short:"X" name:"exclude" help:"Exclude URLs by regex (repeatable)"`
	Concurrency int      `short:"c" default:"5" help:"Concurrent fetch limit"`
	Rate        float64  `short:"r" default:"1" help:"Max requests per second per domain"`
}

// DraftsCmd is the "drafts" subcommand.
type DraftsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Draft ID"`
}

// ConfirmCmd is the "confirm" subcommand.
type ConfirmCmd struct {
	ID string `arg:"" help:"Draft ID"`
}

// RejectCmd is the "reject" subcommand.
type RejectCmd struct {
	ID string `arg:"" help:"Draft ID"`
}

// IngredientCmd groups the catalog management subcommands.
type IngredientCmd struct {
	Add    IngredientAddCmd    `cmd:"" help:"Add an ingredient to the catalog"`
	List   IngredientListCmd   `cmd:"" help:"List catalog ingredients"`
	Remove IngredientRemoveCmd `cmd:"" help:"Remove an ingredient from the catalog"`
}

// IngredientAddCmd is the "ingredient add" subcommand.
type IngredientAddCmd struct {
	Name string `arg:"" help:"Ingredient name"`
}

// IngredientListCmd is the "ingredient list" subcommand.
type IngredientListCmd struct {
	Contains string `short:"s" help:"Only ingredients whose name contains this text"`
}

// IngredientRemoveCmd is the "ingredient remove" subcommand.
type IngredientRemoveCmd struct {
	Name string `arg:"" help:"Ingredient name"`
}

// RecipesCmd is the "recipes" subcommand.
type RecipesCmd struct {
	ID string `arg:"" optional:"" help:"Show a single recipe in full"`
}
