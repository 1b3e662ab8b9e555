package scrape_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/mock"
	"github.com/fwojciec/scullery/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporter_ImportSite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stages recipes, skips schema-less pages, counts failures", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var loaded []string
		importer := &scrape.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *scullery.URLFilter) ([]string, error) {
					return []string{
						"https://example.com/recipes/soup",
						"https://example.com/about",
						"https://example.com/recipes/broken",
					}, nil
				},
			},
			Loader: &mock.RecipeLoader{
				LoadRecipeFn: func(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
					mu.Lock()
					loaded = append(loaded, url)
					mu.Unlock()
					switch url {
					case "https://example.com/about":
						return nil, scullery.Errorf(scullery.ENOTFOUND, "no recipe schema found on the page")
					case "https://example.com/recipes/broken":
						return nil, errors.New("connection reset")
					}
					return &scullery.ConfirmableRecipe{Name: "Soup"}, nil
				},
			},
			Concurrency: 2,
		}

		result, err := importer.ImportSite(ctx, "https://example.com", nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Staged)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, loaded, 3)
	})

	t.Run("deduplicates URLs before scraping", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		calls := 0
		importer := &scrape.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *scullery.URLFilter) ([]string, error) {
					return []string{
						"https://example.com/recipes/soup",
						"https://example.com/recipes/soup",
					}, nil
				},
			},
			Loader: &mock.RecipeLoader{
				LoadRecipeFn: func(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
					mu.Lock()
					calls++
					mu.Unlock()
					return &scullery.ConfirmableRecipe{Name: "Soup"}, nil
				},
			},
		}

		result, err := importer.ImportSite(ctx, "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Staged)
		assert.Equal(t, 1, calls)
	})

	t.Run("empty sitemap yields an empty result", func(t *testing.T) {
		t.Parallel()

		importer := &scrape.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *scullery.URLFilter) ([]string, error) {
					return nil, nil
				},
			},
		}

		result, err := importer.ImportSite(ctx, "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, &scrape.Result{}, result)
	})

	t.Run("sitemap discovery failure is fatal", func(t *testing.T) {
		t.Parallel()

		importer := &scrape.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *scullery.URLFilter) ([]string, error) {
					return nil, errors.New("robots.txt unreachable")
				},
			},
		}

		_, err := importer.ImportSite(ctx, "https://example.com", nil, nil)
		require.Error(t, err)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		importer := &scrape.Importer{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *scullery.URLFilter) ([]string, error) {
					return []string{"https://example.com/recipes/soup"}, nil
				},
			},
			Loader: &mock.RecipeLoader{
				LoadRecipeFn: func(ctx context.Context, url string) (*scullery.ConfirmableRecipe, error) {
					return &scullery.ConfirmableRecipe{Name: "Soup"}, nil
				},
			},
			Limiter: &mock.DomainLimiter{},
		}

		var types []scrape.ProgressType
		_, err := importer.ImportSite(ctx, "https://example.com", nil, func(event scrape.ProgressEvent) {
			types = append(types, event.Type)
		})
		require.NoError(t, err)
		assert.Equal(t, []scrape.ProgressType{scrape.ProgressStarted, scrape.ProgressStaged, scrape.ProgressFinished}, types)
	})
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("allows requests within the limit", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewDomainLimiter(1000)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "other.com"))
	})

	t.Run("returns an error when the context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
