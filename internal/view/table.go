// Package view renders a Comparison for the terminal and computes the cell
// figures shared with the export adapter. Both adapters read the same
// Comparison and format through the same helpers, so their numbers are
// identical for any filter state.
package view

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// Placeholder marks a missing price or an undefined spread. Never "0".
const Placeholder = "-"

// Cell is one supplier's formatted figures within a comparison row.
type Cell struct {
	Price     string
	Variation string
	Best      bool
	Worst     bool
}

// FormatPrice renders a price with two decimals.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// RowCells computes the per-supplier cells of one row, in the given column
// order. Every supplier at the minimum price is Best and every one at the
// maximum is Worst; a supplier absent from the row gets placeholders.
func RowCells(row model.ComparisonRow, suppliers []string) []Cell {
	minPrice, maxPrice, any := priceBounds(row)

	cells := make([]Cell, len(suppliers))
	for i, supplier := range suppliers {
		sp, ok := row.Prices[supplier]
		if !ok || sp.Price <= 0 {
			cells[i] = Cell{Price: Placeholder, Variation: Placeholder}
			continue
		}
		cells[i] = Cell{
			Price:     FormatPrice(sp.Price),
			Variation: FormatPercent(row.Variation.PerSupplier[supplier]),
			Best:      any && sp.Price == minPrice,
			Worst:     any && sp.Price == maxPrice,
		}
	}
	return cells
}

// MaxSpreadCell renders the row's maximum spread, or the placeholder when
// the row has fewer than two distinct prices.
func MaxSpreadCell(row model.ComparisonRow) string {
	if row.Variation.MaxSpread == nil {
		return Placeholder
	}
	return FormatPercent(*row.Variation.MaxSpread)
}

func priceBounds(row model.ComparisonRow) (min, max float64, ok bool) {
	for _, sp := range row.Prices {
		if sp.Price <= 0 {
			continue
		}
		if !ok {
			min, max, ok = sp.Price, sp.Price, true
			continue
		}
		if sp.Price < min {
			min = sp.Price
		}
		if sp.Price > max {
			max = sp.Price
		}
	}
	return min, max, ok
}

// Render writes the comparison as an aligned text table. Best prices are
// marked with "*" and worst with "!", matching the interactive tool's
// best/worst highlighting.
func Render(w io.Writer, c model.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "ARTICLE\tSERIES\tMATERIAL")
	for _, s := range c.Suppliers {
		fmt.Fprintf(tw, "\t%s PRICE\t%s VAR%%", s, s)
	}
	fmt.Fprint(tw, "\tMAX SPREAD%\n")

	for _, row := range c.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s", row.Key.Article, row.Key.Series, row.Key.Material)
		for _, cell := range RowCells(row, c.Suppliers) {
			price := cell.Price
			switch {
			case cell.Best && cell.Worst:
				// Single-price rows are both; leave unmarked.
			case cell.Best:
				price += "*"
			case cell.Worst:
				price += "!"
			}
			fmt.Fprintf(tw, "\t%s\t%s", price, cell.Variation)
		}
		fmt.Fprintf(tw, "\t%s\n", MaxSpreadCell(row))
	}

	return tw.Flush()
}
