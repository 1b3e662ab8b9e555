package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/fwojciec/scullery"
	scyhttp "github.com/fwojciec/scullery/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapXML(urls ...string) string {
	xml := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, u := range urls {
		xml += "<url><loc>" + u + "</loc></url>"
	}
	return xml + "</urlset>"
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs via robots.txt directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/recipes-sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/recipes-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(
				server.URL+"/recipes/soup",
				server.URL+"/recipes/stew",
			))
		})

		urls, err := scyhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/recipes/soup", server.URL + "/recipes/stew"}, urls)
	})

	t.Run("falls back to /sitemap.xml when robots.txt is missing", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(server.URL+"/recipes/soup"))
		})

		urls, err := scyhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/recipes/soup"}, urls)
	})

	t.Run("resolves sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex><sitemap><loc>%s/part1.xml</loc></sitemap><sitemap><loc>%s/part2.xml</loc></sitemap></sitemapindex>`,
				server.URL, server.URL)
		})
		mux.HandleFunc("/part1.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(server.URL+"/recipes/soup"))
		})
		mux.HandleFunc("/part2.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(server.URL+"/recipes/stew"))
		})

		urls, err := scyhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{server.URL + "/recipes/soup", server.URL + "/recipes/stew"}, urls)
	})

	t.Run("applies URL filters", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(
				server.URL+"/recipes/soup",
				server.URL+"/about",
			))
		})

		filter := &scullery.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/recipes/`)}}
		urls, err := scyhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), server.URL, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/recipes/soup"}, urls)
	})

	t.Run("returns empty slice when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		urls, err := scyhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.NotNil(t, urls)
	})

	t.Run("deduplicates URLs across sitemaps", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/a.xml\nSitemap: %s/b.xml\n", server.URL, server.URL)
		})
		mux.HandleFunc("/a.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(server.URL+"/recipes/soup"))
		})
		mux.HandleFunc("/b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML(server.URL+"/recipes/soup"))
		})

		urls, err := scyhttp.NewSitemapService(nil).DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/recipes/soup"}, urls)
	})
}
