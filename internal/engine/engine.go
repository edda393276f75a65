package engine

import (
	"sort"
	"time"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// Compare runs the full pipeline over quotes: filter, anonymize, group,
// variation. Total over well-formed input; an empty input yields an empty
// comparison. The returned Comparison is a fresh value each call.
func Compare(quotes []model.Quote, state model.FilterState) model.Comparison {
	views := Anonymize(Filter(quotes, state), state.ReferenceSupplier, state.Anonymize)
	groups := Group(views)

	rows := make([]model.ComparisonRow, 0, len(groups))
	for _, g := range groups {
		v := Variation(g)
		if len(v.PerSupplier) == 0 {
			continue
		}
		rows = append(rows, model.ComparisonRow{Key: g.Key, Prices: g.Prices, Variation: v})
	}

	return model.Comparison{Rows: rows, Suppliers: DisplaySuppliers(views)}
}

// DisplaySuppliers returns the sorted distinct display-supplier names of
// views, the set adapters use for column layout.
func DisplaySuppliers(views []model.QuoteView) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range views {
		if _, ok := seen[v.DisplaySupplier]; ok {
			continue
		}
		seen[v.DisplaySupplier] = struct{}{}
		out = append(out, v.DisplaySupplier)
	}
	sort.Strings(out)
	return out
}

// Suppliers returns the sorted distinct real supplier names of quotes,
// used to populate allow-list and reference-supplier choices.
func Suppliers(quotes []model.Quote) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range quotes {
		if _, ok := seen[q.Supplier]; ok {
			continue
		}
		seen[q.Supplier] = struct{}{}
		out = append(out, q.Supplier)
	}
	sort.Strings(out)
	return out
}

// DateRange returns the earliest and latest quote dates, for seeding the
// date-range filter. ok is false for an empty input.
func DateRange(quotes []model.Quote) (min, max time.Time, ok bool) {
	if len(quotes) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = quotes[0].QuotedAt, quotes[0].QuotedAt
	for _, q := range quotes[1:] {
		if q.QuotedAt.Before(min) {
			min = q.QuotedAt
		}
		if q.QuotedAt.After(max) {
			max = q.QuotedAt
		}
	}
	return min, max, true
}
