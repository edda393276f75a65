package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

func view(article, series, material, supplier string, price float64, quotedAt time.Time) model.QuoteView {
	return model.QuoteView{
		Quote:           quote(article, series, material, supplier, price, quotedAt),
		DisplaySupplier: supplier,
	}
}

func TestGroupLatestPriceWins(t *testing.T) {
	t.Parallel()

	groups := Group([]model.QuoteView{
		view("A", "S", "G", "X", 100, day(1)),
		view("A", "S", "G", "Y", 120, day(2)),
		view("A", "S", "G", "X", 110, day(3)),
	})

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, model.ProductKey{Article: "A", Series: "S", Material: "G"}, g.Key)
	require.Len(t, g.Prices, 2)
	assert.Equal(t, 110.0, g.Prices["X"].Price)
	assert.Equal(t, day(3), g.Prices["X"].QuotedAt)
	assert.Equal(t, 120.0, g.Prices["Y"].Price)
}

func TestGroupEqualDateKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	groups := Group([]model.QuoteView{
		view("A", "S", "G", "X", 100, day(1)),
		view("A", "S", "G", "X", 999, day(1)),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, 100.0, groups[0].Prices["X"].Price)
}

func TestGroupOlderQuoteDoesNotReplace(t *testing.T) {
	t.Parallel()

	groups := Group([]model.QuoteView{
		view("A", "S", "G", "X", 100, day(5)),
		view("A", "S", "G", "X", 80, day(1)),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, 100.0, groups[0].Prices["X"].Price)
}

func TestGroupOrderIsFirstAppearance(t *testing.T) {
	t.Parallel()

	groups := Group([]model.QuoteView{
		view("B", "T", "M", "X", 10, day(1)),
		view("A", "S", "G", "X", 20, day(2)),
		view("B", "T", "M", "Y", 30, day(3)),
		view("C", "U", "S", "Z", 40, day(4)),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "B", groups[0].Key.Article)
	assert.Equal(t, "A", groups[1].Key.Article)
	assert.Equal(t, "C", groups[2].Key.Article)
}

func TestGroupByDisplaySupplier(t *testing.T) {
	t.Parallel()

	// Two real suppliers sharing a display label collapse to one entry.
	views := []model.QuoteView{
		{Quote: quote("A", "S", "G", "Y", 100, day(1)), DisplaySupplier: "Supplier 1"},
		{Quote: quote("A", "S", "G", "Z", 90, day(2)), DisplaySupplier: "Supplier 2"},
	}
	groups := Group(views)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Prices, 2)
	assert.Equal(t, []string{"Supplier 1", "Supplier 2"}, groups[0].Suppliers)
}

func TestGroupSkipsNonPositivePrices(t *testing.T) {
	t.Parallel()

	groups := Group([]model.QuoteView{
		view("A", "S", "G", "X", 0, day(1)),
		view("A", "S", "G", "Y", -5, day(2)),
	})
	assert.Empty(t, groups)
}

func TestGroupEmptyInput(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Group(nil))
}
