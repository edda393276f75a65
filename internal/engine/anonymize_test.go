package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

func TestAnonymizeDisabled(t *testing.T) {
	t.Parallel()

	views := Anonymize(testQuotes(), "X", false)
	require.Len(t, views, 5)
	for _, v := range views {
		assert.Equal(t, v.Supplier, v.DisplaySupplier)
	}
}

func TestAnonymizeFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	// Suppliers first seen in order Y, X, Z with reference X:
	// Y -> "Supplier 1", Z -> "Supplier 2", X keeps its real name.
	quotes := []model.Quote{
		quote("A", "S", "G", "Y", 100, day(1)),
		quote("A", "S", "G", "X", 110, day(2)),
		quote("B", "S", "G", "Z", 120, day(3)),
		quote("B", "S", "G", "Y", 130, day(4)),
	}

	views := Anonymize(quotes, "X", true)
	require.Len(t, views, 4)
	assert.Equal(t, "Supplier 1", views[0].DisplaySupplier)
	assert.Equal(t, "X", views[1].DisplaySupplier)
	assert.Equal(t, "Supplier 2", views[2].DisplaySupplier)
	assert.Equal(t, "Supplier 1", views[3].DisplaySupplier)
}

func TestAnonymizationMapDistinctLabels(t *testing.T) {
	t.Parallel()

	labels := AnonymizationMap(testQuotes(), "X")
	assert.NotContains(t, labels, "X")

	seen := make(map[string]bool)
	for supplier, label := range labels {
		assert.False(t, seen[label], "label %s assigned twice (supplier %s)", label, supplier)
		seen[label] = true
	}
	assert.Len(t, labels, 2)
}

// Labels follow first-appearance order within whatever subset is passed in,
// so the same supplier can carry different labels across calls with
// different subsets. This preserves the behavior of the interactive tool;
// stabilizing labels alphabetically was considered and rejected.
func TestAnonymizationLabelsDriftAcrossSubsets(t *testing.T) {
	t.Parallel()

	full := []model.Quote{
		quote("A", "S", "G", "Y", 100, day(1)),
		quote("A", "S", "G", "Z", 110, day(2)),
	}
	reordered := []model.Quote{full[1], full[0]}

	assert.Equal(t, "Supplier 1", AnonymizationMap(full, "X")["Y"])
	assert.Equal(t, "Supplier 2", AnonymizationMap(reordered, "X")["Y"])
}

func TestAnonymizeEmptyReferenceLabelsEveryone(t *testing.T) {
	t.Parallel()

	views := Anonymize(testQuotes(), "", true)
	for _, v := range views {
		assert.Contains(t, v.DisplaySupplier, "Supplier ")
	}
}
