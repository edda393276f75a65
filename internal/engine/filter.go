// Package engine implements the price comparison pipeline: filter,
// anonymize, group, and variation. Every function is stateless and
// deterministic; each call takes an input slice and returns a new one,
// so the same data can feed the table view and the export without
// synchronization.
package engine

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

var foldCaser = cases.Fold()

// Filter narrows quotes to the subset matching state. Order-preserving.
// Stages run in a fixed order, each narrowing the previous stage's output;
// a stage whose FilterState field is empty is a no-op.
func Filter(quotes []model.Quote, state model.FilterState) []model.Quote {
	out := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		if inDateRange(q, state) && inAllowList(q, state) && matchesSearch(q, state) {
			out = append(out, q)
		}
	}
	return restrictToReferenceProducts(out, state)
}

func inDateRange(q model.Quote, state model.FilterState) bool {
	if state.DateFrom != nil && q.QuotedAt.Before(*state.DateFrom) {
		return false
	}
	if state.DateTo != nil && q.QuotedAt.After(*state.DateTo) {
		return false
	}
	return true
}

func inAllowList(q model.Quote, state model.FilterState) bool {
	if len(state.Suppliers) == 0 {
		return true
	}
	for _, s := range state.Suppliers {
		if q.Supplier == s {
			return true
		}
	}
	return false
}

func matchesSearch(q model.Quote, state model.FilterState) bool {
	if state.Search == "" {
		return true
	}
	needle := foldCaser.String(state.Search)
	for _, field := range []string{q.Article, q.Series, q.Material} {
		if strings.Contains(foldCaser.String(field), needle) {
			return true
		}
	}
	return false
}

// restrictToReferenceProducts keeps only quotes for products the reference
// supplier has quoted within the already-filtered subset. With the flag on
// but no reference supplier set it is a no-op: validating the selection is
// the caller's job, not a reason to drop data.
func restrictToReferenceProducts(quotes []model.Quote, state model.FilterState) []model.Quote {
	if !state.OnlyReferenceProducts || state.ReferenceSupplier == "" {
		return quotes
	}

	refProducts := make(map[model.ProductKey]struct{})
	for _, q := range quotes {
		if q.Supplier == state.ReferenceSupplier {
			refProducts[q.Key()] = struct{}{}
		}
	}

	out := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		if _, ok := refProducts[q.Key()]; ok {
			out = append(out, q)
		}
	}
	return out
}
