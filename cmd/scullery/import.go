package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/scrape"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	// Compile filters to URLFilter (validates regex patterns early)
	var urlFilter *scullery.URLFilter
	if len(c.Filter) > 0 || len(c.Exclude) > 0 {
		urlFilter = &scullery.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
		for _, pattern := range c.Exclude {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid exclude pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Exclude = append(urlFilter.Exclude, re)
		}
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d URLs\n", event.Total)
		case scrape.ProgressStaged:
			fmt.Fprintf(deps.Stdout, "  staged %q from %s\n", event.Name, event.URL)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.URL, event.Error)
		case scrape.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Importer.ImportSite(deps.Ctx, c.URL, urlFilter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scullery.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Staged %d drafts (%d pages without a recipe, %d failed)\n",
		result.Staged, result.Skipped, result.Failed)
	return nil
}
