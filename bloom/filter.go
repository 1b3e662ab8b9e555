// Package bloom provides URL deduplication for batch imports using a
// Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs that have already been scraped during an import run.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// MarkSeen records the URL and reports whether it was already present.
// False positives are possible (a new URL reported as seen); false
// negatives are not, so a URL is never scraped twice.
func (f *Filter) MarkSeen(url string) bool {
	return f.f.TestAndAddString(url)
}

// Seen reports whether the URL might have been recorded.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
