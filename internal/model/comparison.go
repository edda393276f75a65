package model

// GroupVariation holds per-supplier deviation from the cheapest price in a
// product group, in percent rounded to two decimals. MaxSpread is nil when
// the group has fewer than two distinct supplier prices; adapters render a
// placeholder for it, never zero.
type GroupVariation struct {
	PerSupplier map[string]float64 `json:"per_supplier"`
	MaxSpread   *float64           `json:"max_spread,omitempty"`
}

// ComparisonRow is one product's grouped prices with variation figures.
type ComparisonRow struct {
	Key       ProductKey               `json:"key"`
	Prices    map[string]SupplierPrice `json:"prices"`
	Variation GroupVariation           `json:"variation"`
}

// Comparison is the engine's output: one row per product in first-appearance
// order, plus the sorted distinct display-supplier set for column layout.
// Both the table view and the export are built from the same Comparison so
// their figures are numerically identical.
type Comparison struct {
	Rows      []ComparisonRow `json:"rows"`
	Suppliers []string        `json:"suppliers"`
}

// Row returns the row for the given product key, or nil.
func (c *Comparison) Row(key ProductKey) *ComparisonRow {
	for i := range c.Rows {
		if c.Rows[i].Key == key {
			return &c.Rows[i]
		}
	}
	return nil
}
