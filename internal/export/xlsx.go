// Package export writes a Comparison as an XLSX workbook. Figures come
// from the same formatting helpers as the table view, keeping the two
// adapters numerically identical.
package export

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/quote-compare-cli/internal/model"
	"github.com/sells-group/quote-compare-cli/internal/view"
)

const sheetName = "Price Analysis"

// Workbook builds the comparison workbook: one row per product, with a
// price and a variation column per display supplier in the comparison's
// (alphabetical) column order. Missing cells hold the placeholder, never 0.
func Workbook(c model.Comparison) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return nil, eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Article", "Series", "Material"} {
		header.AddCell().SetString(h)
	}
	for _, s := range c.Suppliers {
		header.AddCell().SetString(fmt.Sprintf("%s - Price", s))
		header.AddCell().SetString(fmt.Sprintf("%s - Variation (%%)", s))
	}

	for _, row := range c.Rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.Key.Article)
		r.AddCell().SetString(row.Key.Series)
		r.AddCell().SetString(row.Key.Material)
		for _, cell := range view.RowCells(row, c.Suppliers) {
			r.AddCell().SetString(cell.Price)
			r.AddCell().SetString(cell.Variation)
		}
	}

	sheet.SetColWidth(0, 2+len(c.Suppliers)*2, 15)

	return f, nil
}

// Write streams the comparison workbook to w.
func Write(c model.Comparison, w io.Writer) error {
	f, err := Workbook(c)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "export: write workbook")
}

// Save writes the comparison workbook to path.
func Save(c model.Comparison, path string) error {
	f, err := Workbook(c)
	if err != nil {
		return err
	}
	return eris.Wrapf(f.Save(path), "export: save %s", path)
}
