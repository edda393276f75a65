package engine

import (
	"fmt"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// AnonymizationMap assigns synthetic labels to the distinct suppliers of
// quotes, in first-appearance order, skipping the reference supplier.
// Labels are "Supplier 1", "Supplier 2", ... and are recomputed from the
// exact input sequence on every call: the same supplier can receive a
// different label once the filtered subset changes. That instability is
// deliberate and documented in the anonymize tests.
func AnonymizationMap(quotes []model.Quote, referenceSupplier string) map[string]string {
	labels := make(map[string]string)
	counter := 1
	for _, q := range quotes {
		if q.Supplier == referenceSupplier {
			continue
		}
		if _, seen := labels[q.Supplier]; seen {
			continue
		}
		labels[q.Supplier] = fmt.Sprintf("Supplier %d", counter)
		counter++
	}
	return labels
}

// Anonymize resolves each quote's display supplier. Disabled, the display
// name is the real name. Enabled, non-reference suppliers get labels from
// AnonymizationMap while the reference supplier keeps its real name.
func Anonymize(quotes []model.Quote, referenceSupplier string, enabled bool) []model.QuoteView {
	views := make([]model.QuoteView, 0, len(quotes))

	var labels map[string]string
	if enabled {
		labels = AnonymizationMap(quotes, referenceSupplier)
	}

	for _, q := range quotes {
		display := q.Supplier
		if enabled {
			if label, ok := labels[q.Supplier]; ok {
				display = label
			}
		}
		views = append(views, model.QuoteView{Quote: q, DisplaySupplier: display})
	}
	return views
}
