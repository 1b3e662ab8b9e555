package mock

import "github.com/fwojciec/scullery"

var _ scullery.SchemaExtractor = (*SchemaExtractor)(nil)

// SchemaExtractor is a mock implementation of scullery.SchemaExtractor.
type SchemaExtractor struct {
	ExtractFn func(html string) (*scullery.InitialFetch, error)
}

func (e *SchemaExtractor) Extract(html string) (*scullery.InitialFetch, error) {
	return e.ExtractFn(html)
}
