package scrape

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/bloom"
	"golang.org/x/sync/errgroup"
)

// Importer stages confirmable recipes for every recipe page discovered in
// a site's sitemap. Pages without a recipe schema are skipped, not fatal:
// most sitemap URLs on a recipe site are category or article pages.
type Importer struct {
	Sitemaps    scullery.SitemapService
	Loader      scullery.RecipeLoader
	Limiter     scullery.DomainLimiter
	Concurrency int
}

// Result holds the outcome of an import run.
type Result struct {
	Staged  int
	Skipped int
	Failed  int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressStaged
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during an import run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Name      string
	Error     error
}

// ProgressFunc is a callback for reporting import progress.
// It is invoked from a single goroutine.
type ProgressFunc func(event ProgressEvent)

// urlResult holds the outcome of scraping a single URL.
type urlResult struct {
	url  string
	name string
	err  error
}

// ImportSite discovers URLs from the site's sitemap and scrapes them
// concurrently, staging one confirmable recipe per page that yields a
// schema. Duplicate URLs are dropped before scraping.
func (imp *Importer) ImportSite(ctx context.Context, baseURL string, filter *scullery.URLFilter, progress ProgressFunc) (*Result, error) {
	urls, err := imp.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	seen := bloom.NewFilter(uint(len(urls))+1, 0.001)
	unique := urls[:0:0]
	for _, u := range urls {
		if !seen.MarkSeen(u) {
			unique = append(unique, u)
		}
	}

	if len(unique) == 0 {
		return &Result{}, nil
	}

	concurrency := imp.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(unique)})
	}

	resultCh := make(chan urlResult, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for _, u := range unique {
			u := u
			g.Go(func() error {
				resultCh <- imp.scrapeOne(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	completed := 0
	for r := range resultCh {
		completed++
		event := ProgressEvent{Completed: completed, Total: len(unique), URL: r.url, Name: r.name, Error: r.err}
		switch {
		case r.err == nil:
			result.Staged++
			event.Type = ProgressStaged
		case scullery.ErrorCode(r.err) == scullery.ENOTFOUND:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Failed++
			event.Type = ProgressFailed
		}
		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: len(unique)})
	}
	return result, nil
}

func (imp *Importer) scrapeOne(ctx context.Context, rawURL string) urlResult {
	if imp.Limiter != nil {
		domain := rawURL
		if u, err := url.Parse(rawURL); err == nil {
			domain = u.Host
		}
		if err := imp.Limiter.Wait(ctx, domain); err != nil {
			return urlResult{url: rawURL, err: err}
		}
	}

	recipe, err := imp.Loader.LoadRecipe(ctx, rawURL)
	if err != nil {
		return urlResult{url: rawURL, err: err}
	}
	return urlResult{url: rawURL, name: recipe.Name}
}
