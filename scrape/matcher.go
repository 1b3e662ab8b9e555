// Package scrape orchestrates the recipe import pipeline: fetch a page,
// extract its recipe schema, match ingredient lines against the catalog,
// and stage the result as a confirmable recipe.
package scrape

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/scullery"
)

// Leading-quantity patterns, longest-applicable-first: mixed fraction,
// simple fraction, decimal. The same span that parses the quantity is the
// span stripped to produce the candidate name text.
var (
	mixedFractionRe = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)\b`)
	fractionRe      = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\b`)
	decimalRe       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\b`)

	mixedFractionStripRe = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)\b\s*`)
	fractionStripRe      = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\b\s*`)
	decimalStripRe       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\b\s*`)
)

// ParseQuantity extracts the leading quantity from an ingredient line.
// It tries a mixed fraction ("1 1/2"), a simple fraction ("1/2"), and a
// decimal ("1.5") in that order; a line with none of them yields 0, as
// does a zero denominator.
func ParseQuantity(line string) float64 {
	text := strings.TrimSpace(line)
	if text == "" {
		return 0
	}

	if m := mixedFractionRe.FindStringSubmatch(text); m != nil {
		whole := mustFloat(m[1])
		numerator := mustFloat(m[2])
		denominator := mustFloat(m[3])
		if denominator == 0 {
			return 0
		}
		return whole + numerator/denominator
	}

	if m := fractionRe.FindStringSubmatch(text); m != nil {
		numerator := mustFloat(m[1])
		denominator := mustFloat(m[2])
		if denominator == 0 {
			return 0
		}
		return numerator / denominator
	}

	if m := decimalRe.FindStringSubmatch(text); m != nil {
		return mustFloat(m[1])
	}

	return 0
}

// StripQuantity removes the leading quantity span from an ingredient line
// and returns the trimmed remainder.
func StripQuantity(line string) string {
	text := strings.TrimSpace(line)
	text = mixedFractionStripRe.ReplaceAllString(text, "")
	text = fractionStripRe.ReplaceAllString(text, "")
	text = decimalStripRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// TokenOverlap scores how well a candidate name matches a catalog entry
// name. Both are lower-cased and whitespace-tokenized into sets; the score
// is the harmonic mean of precision (overlap / entry tokens) and recall
// (overlap / candidate tokens). Disjoint or empty token sets score 0,
// identical sets score 1. The score is order-independent and collapses
// duplicate tokens.
func TokenOverlap(candidate, name string) float64 {
	candidateTokens := tokenSet(candidate)
	nameTokens := tokenSet(name)
	if len(candidateTokens) == 0 || len(nameTokens) == 0 {
		return 0
	}

	overlap := 0
	for token := range candidateTokens {
		if _, ok := nameTokens[token]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}

	precision := float64(overlap) / float64(len(nameTokens))
	recall := float64(overlap) / float64(len(candidateTokens))
	return 2 * precision * recall / (precision + recall)
}

// Matcher resolves raw ingredient lines against the ingredient catalog.
type Matcher struct {
	Catalog scullery.IngredientService
}

// NewMatcher creates a Matcher backed by the given catalog.
func NewMatcher(catalog scullery.IngredientService) *Matcher {
	return &Matcher{Catalog: catalog}
}

// Match resolves one raw ingredient line. A line that resolves to nothing
// is not an error: it yields a match with a nil ingredient and zero
// confidence so a human can correct it at review time. Only catalog store
// failures return an error.
//
// Resolution order, first success wins: exact case-insensitive match on
// the whole line; exact match on the quantity-stripped candidate; best
// token-overlap score over substring candidates and the entire catalog.
// The full-catalog pass runs even when substring candidates exist, since
// a non-substring entry can outscore a substring one.
func (m *Matcher) Match(ctx context.Context, line string) (*scullery.IngredientMatch, error) {
	sourceText := strings.TrimSpace(line)
	quantity := ParseQuantity(sourceText)
	candidate := strings.ToLower(StripQuantity(sourceText))

	match := &scullery.IngredientMatch{
		SourceText: sourceText,
		Quantity:   quantity,
	}
	if candidate == "" {
		return match, nil
	}

	if ing, err := m.findExact(ctx, sourceText); err != nil {
		return nil, err
	} else if ing != nil {
		match.Ingredient = ing
		match.Confidence = 1.0
		return match, nil
	}

	if ing, err := m.findExact(ctx, candidate); err != nil {
		return nil, err
	} else if ing != nil {
		match.Ingredient = ing
		match.Confidence = 1.0
		return match, nil
	}

	var best *scullery.Ingredient
	bestScore := 0.0
	scan := func(entries []*scullery.Ingredient) {
		for _, entry := range entries {
			// Strictly-greater comparison: the first entry reaching a
			// given maximum wins; equal scores never replace it.
			if score := TokenOverlap(candidate, entry.Name); score > bestScore {
				best = entry
				bestScore = score
			}
		}
	}

	partial, err := m.Catalog.FindIngredientsByNameContaining(ctx, candidate)
	if err != nil {
		return nil, err
	}
	scan(partial)

	all, err := m.Catalog.FindIngredients(ctx, scullery.IngredientFilter{})
	if err != nil {
		return nil, err
	}
	scan(all)

	if best != nil {
		match.Ingredient = best
		match.Confidence = bestScore
	}
	return match, nil
}

// findExact looks up an exact case-insensitive name, treating ENOTFOUND
// as a miss rather than a failure.
func (m *Matcher) findExact(ctx context.Context, name string) (*scullery.Ingredient, error) {
	ing, err := m.Catalog.FindIngredientByName(ctx, name)
	if err != nil {
		if scullery.ErrorCode(err) == scullery.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}
	return ing, nil
}

func tokenSet(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(s)) {
		tokens[token] = struct{}{}
	}
	return tokens
}

// mustFloat parses digits already validated by a regexp match.
func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
