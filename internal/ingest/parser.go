package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// excelEpoch is day zero of the 1900 date system (serial 1 = 1900-01-01,
// with the historical Lotus leap-year bug baked in).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseRow(cells []string, idx columnIndex) (model.Quote, error) {
	get := func(pos int) string {
		if pos >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[pos])
	}

	q := model.Quote{
		Article:  get(idx.article),
		Series:   get(idx.series),
		Material: get(idx.material),
		Supplier: get(idx.supplier),
	}
	for _, field := range []struct {
		name, value string
	}{
		{"article", q.Article},
		{"series", q.Series},
		{"material", q.Material},
		{"supplier", q.Supplier},
	} {
		if field.value == "" {
			return model.Quote{}, eris.Errorf("missing %s", field.name)
		}
	}

	price, err := ParsePrice(get(idx.price))
	if err != nil {
		return model.Quote{}, err
	}
	q.Price = price

	quotedAt, err := ParseQuoteDate(get(idx.quotedAt))
	if err != nil {
		return model.Quote{}, err
	}
	q.QuotedAt = quotedAt

	return q, nil
}

// ParsePrice parses a positive price, accepting a comma decimal separator.
func ParsePrice(s string) (float64, error) {
	if s == "" {
		return 0, eris.New("missing price")
	}
	p, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, eris.Errorf("invalid price %q", s)
	}
	if p <= 0 {
		return 0, eris.Errorf("price must be positive, got %v", p)
	}
	return p, nil
}

// ParseQuoteDate parses a request date as an Excel serial number,
// DD/MM/YYYY with optional time, or ISO 8601 text.
func ParseQuoteDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, eris.New("missing date")
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, eris.Errorf("invalid date serial %q", s)
		}
		return excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour))), nil
	}

	cleaned := strings.Join(strings.Fields(s), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("invalid date %q", s)
}
