package model

import "github.com/rotisserie/eris"

// Error kinds surfaced at the ingestion and command boundaries. The engine
// itself is total over well-formed input and returns none of these.
var (
	// ErrInvalidInput marks a malformed upload (wrong type, empty, too large,
	// missing columns). Aborts ingestion.
	ErrInvalidInput = eris.New("invalid input")

	// ErrEmptyDataset marks an ingestion that produced no valid rows.
	ErrEmptyDataset = eris.New("no valid rows in dataset")

	// ErrMissingReferenceSupplier marks a reference-dependent action requested
	// without a reference supplier selected. Surfaced as a user validation
	// message; the engine treats the corresponding filter as a no-op.
	ErrMissingReferenceSupplier = eris.New("reference supplier not selected")
)
