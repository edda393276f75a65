package engine

import (
	"github.com/sells-group/quote-compare-cli/internal/model"
)

// Group collapses quote views into one ProductGroup per product, keeping
// each display supplier's most recent quote. Single pass; groups appear in
// first-appearance order of their key. For one (group, supplier) pair the
// quote with the strictly greatest date wins; on an equal date the
// earlier-seen quote is kept.
func Group(views []model.QuoteView) []model.ProductGroup {
	index := make(map[model.ProductKey]int)
	groups := make([]model.ProductGroup, 0)

	for _, v := range views {
		if v.Price <= 0 {
			// Ingestion guarantees positive prices; tolerate violations
			// rather than let them poison min/max downstream.
			continue
		}

		key := v.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.ProductGroup{
				Key:    key,
				Prices: make(map[string]model.SupplierPrice),
			})
		}

		g := &groups[i]
		current, seen := g.Prices[v.DisplaySupplier]
		if !seen {
			g.Suppliers = append(g.Suppliers, v.DisplaySupplier)
		}
		if !seen || v.QuotedAt.After(current.QuotedAt) {
			g.Prices[v.DisplaySupplier] = model.SupplierPrice{Price: v.Price, QuotedAt: v.QuotedAt}
		}
	}

	return groups
}
