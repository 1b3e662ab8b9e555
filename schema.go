package scullery

// InitialFetch is the normalized result of scanning a page for an embedded
// recipe schema. It is transient: the pipeline step that produced it is
// its only owner.
type InitialFetch struct {
	// Name is non-empty and trimmed.
	Name string

	// Ingredients holds the raw ingredient lines in schema order,
	// trimmed, with empty lines dropped.
	Ingredients []string

	// Steps holds the instruction lines in schema order.
	Steps []string

	// PrepTimeMinutes and CookTimeMinutes are nil when the schema omits
	// the field or its duration string cannot be parsed.
	PrepTimeMinutes *int
	CookTimeMinutes *int

	// Servings is parsed from the schema's yield field; nil when absent
	// or unparseable.
	Servings *int

	// Description is empty when the schema's description is absent or
	// not a string.
	Description string
}

// SchemaExtractor scans HTML for an embedded recipe schema.
type SchemaExtractor interface {
	// Extract locates the first JSON-LD item typed "Recipe" and
	// normalizes it. Returns ENOTFOUND if no recipe schema is present
	// and EINVALID if one is present but has no usable name.
	Extract(html string) (*InitialFetch, error)
}
