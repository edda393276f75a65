package engine

import (
	"math"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// Variation computes each supplier's percentage deviation from the group's
// cheapest price, rounded to two decimals, and the group's maximum spread.
// MaxSpread is nil unless the group holds two or more distinct supplier
// prices. A group without positive prices yields an empty PerSupplier map;
// the orchestrator drops such groups from the comparison.
func Variation(group model.ProductGroup) model.GroupVariation {
	v := model.GroupVariation{PerSupplier: make(map[string]float64, len(group.Prices))}

	minPrice := math.Inf(1)
	maxPrice := math.Inf(-1)
	distinct := make(map[float64]struct{})
	for _, sp := range group.Prices {
		if sp.Price <= 0 {
			continue
		}
		minPrice = math.Min(minPrice, sp.Price)
		maxPrice = math.Max(maxPrice, sp.Price)
		distinct[sp.Price] = struct{}{}
	}
	if len(distinct) == 0 {
		return v
	}

	for supplier, sp := range group.Prices {
		if sp.Price <= 0 {
			continue
		}
		v.PerSupplier[supplier] = roundPercent((sp.Price - minPrice) / minPrice * 100)
	}

	if len(distinct) >= 2 {
		spread := roundPercent((maxPrice - minPrice) / minPrice * 100)
		v.MaxSpread = &spread
	}
	return v
}

func roundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}
