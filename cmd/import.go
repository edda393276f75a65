package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/quote-compare-cli/internal/ingest"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx> [more.xlsx ...]",
	Short: "Import quote spreadsheets into a dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		name := importName
		if name == "" {
			name = filepath.Base(args[0])
		}
		ds, err := st.CreateDataset(ctx, name, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		// Parse files concurrently; the single writer below keeps the
		// dataset's quote order deterministic per file.
		results := make([]*ingest.Result, len(args))
		var g errgroup.Group
		g.SetLimit(4)
		for i, path := range args {
			g.Go(func() error {
				res, err := ingest.File(path, cfg.Ingest.Options())
				if err != nil {
					return eris.Wrapf(err, "import %s", filepath.Base(path))
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var imported, rejected int
		for _, res := range results {
			n, err := st.AddQuotes(ctx, ds.ID, res.Quotes)
			if err != nil {
				return err
			}
			imported += n
			rejected += res.Rejected
		}

		zap.L().Info("import complete",
			zap.String("dataset", ds.ID),
			zap.Int("imported", imported),
			zap.Int("rejected", rejected),
		)
		fmt.Printf("dataset %s: %d quotes imported (%d rows rejected)\n", ds.ID, imported, rejected)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "dataset name (default: first file name)")
	rootCmd.AddCommand(importCmd)
}
