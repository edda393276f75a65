package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/quote-compare-cli/internal/engine"
	"github.com/sells-group/quote-compare-cli/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <dataset-id | file.xlsx>",
	Short: "Export the price comparison as an XLSX workbook",
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

		c := engine.Compare(quotes, state)
		if err := export.Save(c, exportOut); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("out", exportOut),
			zap.Int("products", len(c.Rows)),
			zap.Int("suppliers", len(c.Suppliers)),
		)
		fmt.Printf("wrote %s (%d products, %d suppliers)\n", exportOut, len(c.Rows), len(c.Suppliers))
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "comparison.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
