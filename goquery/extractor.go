// Package goquery provides a goquery-based implementation of
// scullery.SchemaExtractor. It scans a page's JSON-LD blocks for an item
// typed "Recipe" and normalizes it into an InitialFetch.
package goquery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scullery"
)

// Compile-time interface verification.
var _ scullery.SchemaExtractor = (*Extractor)(nil)

// Extractor extracts embedded recipe schemas from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans every application/ld+json block for the first item typed
// "Recipe". Malformed blocks are skipped individually; a parse failure in
// one block never aborts the scan of later blocks.
func (e *Extractor) Extract(html string) (*scullery.InitialFetch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scullery.Errorf(scullery.EINVALID, "failed to parse HTML: %v", err)
	}

	var recipe map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		for _, item := range schemaItems(data) {
			if isRecipeSchema(item) {
				recipe = item
				return false
			}
		}
		return true
	})

	if recipe == nil {
		return nil, scullery.Errorf(scullery.ENOTFOUND, "no recipe schema found on the page")
	}

	name, ok := recipe["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, scullery.Errorf(scullery.EINVALID, "recipe schema found, but missing a valid recipe name")
	}

	fetch := &scullery.InitialFetch{
		Name:            strings.TrimSpace(name),
		Ingredients:     parseIngredientList(recipe["recipeIngredient"]),
		Steps:           parseInstructionSteps(recipe["recipeInstructions"]),
		PrepTimeMinutes: parseOptionalDuration(recipe["prepTime"]),
		CookTimeMinutes: parseOptionalDuration(recipe["cookTime"]),
		Servings:        parseYield(recipe["recipeYield"]),
	}
	if desc, ok := recipe["description"].(string); ok {
		fetch.Description = desc
	}
	return fetch, nil
}

// schemaItems flattens a decoded JSON-LD block into candidate items.
// An object yields itself plus any objects under "@graph"; a list yields
// its object elements; anything else yields nothing. Order is preserved.
func schemaItems(data any) []map[string]any {
	switch v := data.(type) {
	case map[string]any:
		items := []map[string]any{v}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]any); ok {
					items = append(items, obj)
				}
			}
		}
		return items
	case []any:
		var items []map[string]any
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				items = append(items, obj)
			}
		}
		return items
	}
	return nil
}

// isRecipeSchema reports whether the item's @type is, or contains, "Recipe".
func isRecipeSchema(item map[string]any) bool {
	switch typ := item["@type"].(type) {
	case string:
		return typ == "Recipe"
	case []any:
		for _, t := range typ {
			if s, ok := t.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// durationToMinutes converts a restricted ISO 8601 duration of the form
// PT[<n>H][<n>M] to minutes, e.g. "PT1H30M" -> 90. Anything outside that
// form is an error.
func durationToMinutes(s string) (int, error) {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok || rest == "" {
		return 0, fmt.Errorf("not a PT[nH][nM] duration: %q", s)
	}

	hours := 0
	if i := strings.Index(rest, "H"); i >= 0 {
		h, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, err
		}
		hours = h
		rest = rest[i+1:]
	}

	minutes := 0
	if rest != "" {
		part, ok := strings.CutSuffix(rest, "M")
		if !ok {
			return 0, fmt.Errorf("not a PT[nH][nM] duration: %q", s)
		}
		m, err := strconv.Atoi(part)
		if err != nil {
			return 0, err
		}
		minutes = m
	}

	return hours*60 + minutes, nil
}

// parseOptionalDuration returns nil for non-string input or a string that
// fails integer extraction. Duration parse failures are never fatal.
func parseOptionalDuration(v any) *int {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	minutes, err := durationToMinutes(s)
	if err != nil {
		return nil
	}
	return &minutes
}

// parseYield extracts a servings count from a recipeYield value, which in
// the wild is a string, a number, or a QuantitativeValue-style object.
// Any failure yields nil.
func parseYield(v any) *int {
	switch y := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return nil
		}
		return &n
	case float64:
		n := int(y)
		return &n
	case map[string]any:
		switch inner := y["value"].(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(inner))
			if err != nil {
				return nil
			}
			return &n
		case float64:
			n := int(inner)
			return &n
		}
	}
	return nil
}

// parseIngredientList keeps only string elements, trimmed, dropping empties.
func parseIngredientList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var ingredients []string
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			ingredients = append(ingredients, strings.TrimSpace(s))
		}
	}
	return ingredients
}

// parseInstructionSteps normalizes recipeInstructions: a bare string is a
// single step, a list yields one step per string element or per object's
// "text" field. Blank steps are dropped, order is preserved.
func parseInstructionSteps(v any) []string {
	if s, ok := v.(string); ok {
		if step := strings.TrimSpace(s); step != "" {
			return []string{step}
		}
		return nil
	}

	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var steps []string
	for _, item := range raw {
		if step := parseInstructionItem(item); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

func parseInstructionItem(item any) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return strings.TrimSpace(text)
		}
	}
	return ""
}
