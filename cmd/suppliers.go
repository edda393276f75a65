package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/quote-compare-cli/internal/engine"
)

var suppliersCmd = &cobra.Command{
	Use:   "suppliers <dataset-id | file.xlsx>",
	Short: "List the distinct suppliers and date range of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quotes, err := loadQuotes(cmd, args[0])
		if err != nil {
			return err
		}

		for _, s := range engine.Suppliers(quotes) {
			fmt.Println(s)
		}
		if min, max, ok := engine.DateRange(quotes); ok {
			fmt.Printf("\n%d quotes from %s to %s\n",
				len(quotes), min.Format("02/01/2006"), max.Format("02/01/2006"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suppliersCmd)
}
