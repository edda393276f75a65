package model

import (
	"strings"
	"time"
)

// Quote is one supplier's price for one product on one date. Quotes are
// created once at ingestion and never mutated.
type Quote struct {
	Article  string    `json:"article"`
	Series   string    `json:"series"`
	Material string    `json:"material"`
	Supplier string    `json:"supplier"`
	Price    float64   `json:"price"`
	QuotedAt time.Time `json:"quoted_at"`
}

// Key returns the product identity of the quote.
func (q Quote) Key() ProductKey {
	return ProductKey{Article: q.Article, Series: q.Series, Material: q.Material}
}

// Valid reports whether the quote satisfies the ingestion contract:
// trimmed non-empty identifying strings, a positive price, and a date.
func (q Quote) Valid() bool {
	for _, s := range []string{q.Article, q.Series, q.Material, q.Supplier} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return q.Price > 0 && !q.QuotedAt.IsZero()
}

// ProductKey identifies a product by (article, series, material).
// Equality is structural over the three trimmed strings.
type ProductKey struct {
	Article  string `json:"article"`
	Series   string `json:"series"`
	Material string `json:"material"`
}

// QuoteView is a Quote with a resolved display identity for its supplier.
// When anonymization is off, DisplaySupplier equals Supplier.
type QuoteView struct {
	Quote
	DisplaySupplier string `json:"display_supplier"`
}

// SupplierPrice is one supplier's most recent price within a product group.
type SupplierPrice struct {
	Price    float64   `json:"price"`
	QuotedAt time.Time `json:"quoted_at"`
}

// ProductGroup aggregates one product's latest quote per display supplier.
// Suppliers preserves first-appearance order of display suppliers within
// the group's input quotes.
type ProductGroup struct {
	Key       ProductKey               `json:"key"`
	Prices    map[string]SupplierPrice `json:"prices"`
	Suppliers []string                 `json:"suppliers"`
}

// FilterState holds the caller-owned filter settings for one engine pass.
// The engine never mutates it and holds no state between invocations.
type FilterState struct {
	DateFrom              *time.Time `json:"date_from,omitempty"`
	DateTo                *time.Time `json:"date_to,omitempty"`
	Suppliers             []string   `json:"suppliers,omitempty"`
	Search                string     `json:"search,omitempty"`
	OnlyReferenceProducts bool       `json:"only_reference_products,omitempty"`
	Anonymize             bool       `json:"anonymize,omitempty"`
	ReferenceSupplier     string     `json:"reference_supplier,omitempty"`
}
