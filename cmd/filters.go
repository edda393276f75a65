package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/quote-compare-cli/internal/ingest"
	"github.com/sells-group/quote-compare-cli/internal/model"
)

// addFilterFlags registers the shared filter flags used by compare and export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start of date range (inclusive, DD/MM/YYYY or ISO)")
	cmd.Flags().String("to", "", "end of date range (inclusive, DD/MM/YYYY or ISO)")
	cmd.Flags().StringSlice("supplier", nil, "restrict to these suppliers (repeatable)")
	cmd.Flags().String("search", "", "case-insensitive text filter on article/series/material")
	cmd.Flags().String("reference", "", "reference supplier")
	cmd.Flags().Bool("only-reference-products", false, "keep only products quoted by the reference supplier")
	cmd.Flags().Bool("anonymize", false, "replace non-reference supplier names with synthetic labels")
}

// filterStateFromFlags builds the engine FilterState from command flags.
// Reference-dependent flags without --reference are a user error here, at
// the boundary, not inside the engine.
func filterStateFromFlags(cmd *cobra.Command) (model.FilterState, error) {
	var state model.FilterState

	if s, _ := cmd.Flags().GetString("from"); s != "" {
		t, err := ingest.ParseQuoteDate(s)
		if err != nil {
			return state, eris.Wrap(err, "--from")
		}
		state.DateFrom = &t
	}
	if s, _ := cmd.Flags().GetString("to"); s != "" {
		t, err := ingest.ParseQuoteDate(s)
		if err != nil {
			return state, eris.Wrap(err, "--to")
		}
		// An end date without a time means "through that whole day".
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			t = t.Add(24*time.Hour - time.Second)
		}
		state.DateTo = &t
	}

	state.Suppliers, _ = cmd.Flags().GetStringSlice("supplier")
	state.Search, _ = cmd.Flags().GetString("search")
	state.ReferenceSupplier, _ = cmd.Flags().GetString("reference")
	state.OnlyReferenceProducts, _ = cmd.Flags().GetBool("only-reference-products")
	state.Anonymize, _ = cmd.Flags().GetBool("anonymize")

	if (state.OnlyReferenceProducts || state.Anonymize) && state.ReferenceSupplier == "" {
		return state, eris.Wrap(model.ErrMissingReferenceSupplier, "set --reference")
	}

	return state, nil
}
