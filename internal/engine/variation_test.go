package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

func groupWithPrices(prices map[string]float64) model.ProductGroup {
	g := model.ProductGroup{
		Key:    model.ProductKey{Article: "A", Series: "S", Material: "G"},
		Prices: make(map[string]model.SupplierPrice, len(prices)),
	}
	for supplier, p := range prices {
		g.Prices[supplier] = model.SupplierPrice{Price: p, QuotedAt: day(1)}
		g.Suppliers = append(g.Suppliers, supplier)
	}
	return g
}

func TestVariationPercents(t *testing.T) {
	t.Parallel()

	v := Variation(groupWithPrices(map[string]float64{"X": 110, "Y": 120}))

	assert.InDelta(t, 0.0, v.PerSupplier["X"], 0.0001)
	assert.InDelta(t, 9.09, v.PerSupplier["Y"], 0.0001)
	require.NotNil(t, v.MaxSpread)
	assert.InDelta(t, 9.09, *v.MaxSpread, 0.0001)
}

func TestVariationRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prices map[string]float64
		want   map[string]float64
	}{
		{
			name:   "two decimals half up",
			prices: map[string]float64{"X": 3, "Y": 4},
			want:   map[string]float64{"X": 0, "Y": 33.33},
		},
		{
			name:   "exact percentages untouched",
			prices: map[string]float64{"X": 100, "Y": 150},
			want:   map[string]float64{"X": 0, "Y": 50},
		},
		{
			name:   "repeating decimal",
			prices: map[string]float64{"X": 90, "Y": 100},
			want:   map[string]float64{"X": 0, "Y": 11.11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := Variation(groupWithPrices(tt.prices))
			require.Len(t, v.PerSupplier, len(tt.want))
			for supplier, want := range tt.want {
				assert.InDelta(t, want, v.PerSupplier[supplier], 0.0001, supplier)
			}
		})
	}
}

func TestVariationCheapestIsZero(t *testing.T) {
	t.Parallel()

	v := Variation(groupWithPrices(map[string]float64{"X": 50, "Y": 75, "Z": 100}))
	assert.Equal(t, 0.0, v.PerSupplier["X"])
	for supplier, percent := range v.PerSupplier {
		assert.GreaterOrEqual(t, percent, 0.0, supplier)
	}
}

func TestVariationMaxSpreadRequiresTwoDistinctPrices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prices  map[string]float64
		present bool
	}{
		{name: "single supplier", prices: map[string]float64{"X": 100}, present: false},
		{name: "two suppliers same price", prices: map[string]float64{"X": 100, "Y": 100}, present: false},
		{name: "two distinct prices", prices: map[string]float64{"X": 100, "Y": 101}, present: true},
		{name: "three suppliers two distinct", prices: map[string]float64{"X": 100, "Y": 100, "Z": 120}, present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := Variation(groupWithPrices(tt.prices))
			if tt.present {
				assert.NotNil(t, v.MaxSpread)
			} else {
				assert.Nil(t, v.MaxSpread)
			}
		})
	}
}

func TestVariationIgnoresNonPositivePrices(t *testing.T) {
	t.Parallel()

	// Defensive re-validation: a zero price must not become the minimum.
	g := groupWithPrices(map[string]float64{"X": 0, "Y": 100, "Z": 110})
	v := Variation(g)

	assert.NotContains(t, v.PerSupplier, "X")
	assert.Equal(t, 0.0, v.PerSupplier["Y"])
	assert.InDelta(t, 10.0, v.PerSupplier["Z"], 0.0001)
}

func TestVariationEmptyGroup(t *testing.T) {
	t.Parallel()

	v := Variation(groupWithPrices(nil))
	assert.Empty(t, v.PerSupplier)
	assert.Nil(t, v.MaxSpread)
}
