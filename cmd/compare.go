package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/quote-compare-cli/internal/engine"
	"github.com/sells-group/quote-compare-cli/internal/ingest"
	"github.com/sells-group/quote-compare-cli/internal/model"
	"github.com/sells-group/quote-compare-cli/internal/view"
)

var compareCmd = &cobra.Command{
	Use:   "compare <dataset-id | file.xlsx>",
	Short: "Render the price comparison table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := filterStateFromFlags(cmd)
		if err != nil {
			return err
		}

		quotes, err := loadQuotes(cmd, args[0])
		if err != nil {
			return err
		}

		return view.Render(os.Stdout, engine.Compare(quotes, state))
	},
}

// loadQuotes resolves the argument as a spreadsheet path first, then as a
// stored dataset ID.
func loadQuotes(cmd *cobra.Command, arg string) ([]model.Quote, error) {
	if _, err := os.Stat(arg); err == nil {
		res, err := ingest.File(arg, cfg.Ingest.Options())
		if err != nil {
			return nil, err
		}
		return res.Quotes, nil
	}

	ctx := cmd.Context()
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.GetDataset(ctx, arg); err != nil {
		return nil, eris.Wrapf(err, "no such file or dataset %q", arg)
	}
	return st.ListQuotes(ctx, arg)
}

func init() {
	addFilterFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}
