package scullery

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch issues a GET against the URL and returns the response body.
	// The context controls timeout and cancellation; callers must bound
	// the request with a deadline rather than assume it returns.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain,
	// or returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
