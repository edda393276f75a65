// Package store persists imported quote datasets. The comparison engine
// never touches the store: commands load quotes from it and hand them to
// the engine as plain slices.
package store

import (
	"context"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// Store defines the persistence interface for quote datasets.
type Store interface {
	CreateDataset(ctx context.Context, name, source string) (*model.Dataset, error)
	GetDataset(ctx context.Context, id string) (*model.Dataset, error)
	ListDatasets(ctx context.Context) ([]model.Dataset, error)
	DeleteDataset(ctx context.Context, id string) error

	// AddQuotes appends quotes to a dataset, preserving input order.
	// ListQuotes returns them in that same order.
	AddQuotes(ctx context.Context, datasetID string, quotes []model.Quote) (int, error)
	ListQuotes(ctx context.Context, datasetID string) ([]model.Quote, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
