package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-call/internal/duckdb"
	"github.com/inodb/vibe-call/internal/vcf"
)

func newLoadCmd() *cobra.Command {
	var clearFirst bool

	cmd := &cobra.Command{
		Use:   "load <calls.vcf>",
		Short: "Load vibe-call VCF output into a DuckDB database",
		Example: `  vibe-call load calls.vcf --db calls.duckdb
  vibe-call load --clear calls.vcf.gz --db calls.duckdb
  cat calls.vcf | vibe-call load - --db calls.duckdb`,
		Args: cobra.ExactArgs(1),
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

			if clearFirst {
				if err := store.ClearCalls(); err != nil {
					return fmt.Errorf("clearing calls: %w", err)
				}
			}

			n, err := loadCalls(args[0], store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d calls into %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().String("db", "", "DuckDB database to load calls into")
	cmd.Flags().BoolVar(&clearFirst, "clear", false, "Remove previously loaded calls first")

	return cmd
}

// loadCalls parses a VCF file and stores its records in batches.
func loadCalls(path string, store *duckdb.Store) (int, error) {
	parser, err := vcf.NewParser(path)
	if err != nil {
		return 0, err
	}
	defer parser.Close()

	return loadFrom(parser, store)
}

func loadFrom(r vcf.VariantReader, store *duckdb.Store) (int, error) {
	var n int
	batch := make([]*vcf.Variant, 0, dbBatchSize)
	for {
		v, err := r.Next()
		if err != nil {
			return n, err
		}
		if v == nil {
			break
		}
		batch = append(batch, v)
		if len(batch) == dbBatchSize {
			if err := store.WriteCalls(batch); err != nil {
				return n, err
			}
			n += len(batch)
			batch = batch[:0]
		}
	}
	if err := store.WriteCalls(batch); err != nil {
		return n, err
	}
	return n + len(batch), nil
}
