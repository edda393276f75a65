package model

import "time"

// Dataset is one imported batch of quotes, persisted so the compare, export,
// and serve paths can run without re-parsing the source spreadsheet.
type Dataset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	QuoteCount int       `json:"quote_count"`
	CreatedAt  time.Time `json:"created_at"`
}
