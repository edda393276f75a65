package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage imported datasets",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported datasets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		datasets, err := st.ListDatasets(ctx)
		if err != nil {
			return eris.Wrap(err, "datasets list")
		}

		if len(datasets) == 0 {
			fmt.Fprintln(os.Stderr, "No datasets found.")
			return nil
		}

		formatDatasetsList(os.Stdout, datasets)
		return nil
	},
}

var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete <dataset-id>",
	Short: "Delete a dataset and its quotes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteDataset(ctx, args[0]); err != nil {
			return eris.Wrap(err, "datasets delete")
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func formatDatasetsList(w io.Writer, datasets []model.Dataset) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSOURCE\tQUOTES\tCREATED")
	for _, d := range datasets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			d.ID, d.Name, d.Source, d.QuoteCount, d.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsDeleteCmd)
	rootCmd.AddCommand(datasetsCmd)
}
