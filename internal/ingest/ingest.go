// Package ingest converts supplier quote spreadsheets into validated
// model.Quote values. All validation happens here, at the boundary: the
// engine only ever sees well-formed quotes.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// Columns maps the required spreadsheet headers. Header names are
// configurable so localized exports (French sheets use
// "Fournisseur"/"Prix"/"Date demande") can be ingested unchanged.
type Columns struct {
	Article  string `yaml:"article" mapstructure:"article"`
	Series   string `yaml:"series" mapstructure:"series"`
	Material string `yaml:"material" mapstructure:"material"`
	Supplier string `yaml:"supplier" mapstructure:"supplier"`
	Price    string `yaml:"price" mapstructure:"price"`
	QuotedAt string `yaml:"quoted_at" mapstructure:"quoted_at"`
}

// DefaultColumns returns the default header names.
func DefaultColumns() Columns {
	return Columns{
		Article:  "Article",
		Series:   "Series",
		Material: "Material",
		Supplier: "Supplier",
		Price:    "Price",
		QuotedAt: "Request Date",
	}
}

// Options configures an ingestion pass.
type Options struct {
	Columns      Columns
	MaxFileBytes int64 // 0 = no limit
	SheetIndex   int
}

// Result carries the ingested quotes plus per-row rejection counts.
type Result struct {
	Quotes   []model.Quote
	Rejected int
}

// File validates, reads, and parses one spreadsheet. Rows failing a check
// are warned about and skipped; a file yielding zero valid rows is an
// ErrEmptyDataset.
func File(path string, opts Options) (*Result, error) {
	if err := ValidateFile(path, opts.MaxFileBytes); err != nil {
		return nil, err
	}

	header, rows, err := readSheet(path, opts.SheetIndex)
	if err != nil {
		return nil, err
	}

	cols := opts.Columns
	if cols == (Columns{}) {
		cols = DefaultColumns()
	}
	idx, err := mapHeader(header, cols)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for i, cells := range rows {
		q, err := parseRow(cells, idx)
		if err != nil {
			// Header is row 1, so spreadsheet row numbers start at 2.
			zap.L().Warn("row rejected",
				zap.String("file", filepath.Base(path)),
				zap.Int("row", i+2),
				zap.Error(err),
			)
			res.Rejected++
			continue
		}
		res.Quotes = append(res.Quotes, q)
	}

	if len(res.Quotes) == 0 {
		return nil, eris.Wrapf(model.ErrEmptyDataset, "ingest: %s", filepath.Base(path))
	}
	return res, nil
}

// columnIndex holds resolved header positions.
type columnIndex struct {
	article, series, material, supplier, price, quotedAt int
}

func mapHeader(header []string, cols Columns) (columnIndex, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	idx := columnIndex{
		article:  find(cols.Article),
		series:   find(cols.Series),
		material: find(cols.Material),
		supplier: find(cols.Supplier),
		price:    find(cols.Price),
		quotedAt: find(cols.QuotedAt),
	}

	var missing []string
	for _, c := range []struct {
		name string
		pos  int
	}{
		{cols.Article, idx.article},
		{cols.Series, idx.series},
		{cols.Material, idx.material},
		{cols.Supplier, idx.supplier},
		{cols.Price, idx.price},
		{cols.QuotedAt, idx.quotedAt},
	} {
		if c.pos < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return idx, eris.Wrapf(model.ErrInvalidInput, "ingest: missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
