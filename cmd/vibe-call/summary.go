package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-call/internal/duckdb"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "summary",
		Short:   "Summarize calls stored in a DuckDB database",
		Example: `  vibe-call summary --db calls.duckdb`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{"db.path": "db"})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("db.path")
			if path == "" {
				return usageError{fmt.Errorf("--db is required")}
			}
			store, err := duckdb.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			sum, err := store.Summarize()
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}

	cmd.Flags().String("db", "", "DuckDB database holding calls")

	return cmd
}

// writeSummary prints a summary of the stored calls.
func writeSummary(w io.Writer, sum *duckdb.Summary) {
	fmt.Fprintf(w, "Calls:       %d\n", sum.Total)
	fmt.Fprintf(w, "  SNVs:      %d\n", sum.SNVs)
	fmt.Fprintf(w, "  Insertions: %d\n", sum.Insertions)
	fmt.Fprintf(w, "  Deletions: %d\n", sum.Deletions)
	fmt.Fprintf(w, "  No-calls:  %d\n", sum.NoCalls)
	if len(sum.Reasons) == 0 {
		return
	}
	fmt.Fprintf(w, "NC reasons:\n")
	for _, rc := range sum.Reasons {
		fmt.Fprintf(w, "  %-18s %d\n", rc.Reason, rc.Count)
	}
}
