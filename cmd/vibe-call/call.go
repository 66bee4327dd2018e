package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-call/internal/align"
	"github.com/inodb/vibe-call/internal/call"
	"github.com/inodb/vibe-call/internal/duckdb"
	"github.com/inodb/vibe-call/internal/mates"
	"github.com/inodb/vibe-call/internal/output"
	"github.com/inodb/vibe-call/internal/seq"
	"github.com/inodb/vibe-call/internal/vcf"
)

// dbBatchSize is the number of calls buffered before each DuckDB write.
const dbBatchSize = 10000

type callOptions struct {
	targets      string
	queries      string
	output       string
	outputFormat string
}

func newCallCmd() *cobra.Command {
	var opts callOptions

	cmd := &cobra.Command{
		Use:   "call --targets <targets.fa> --queries <contigs.augfasta>",
		Short: "Call variants from contigs aligned to reference targets",
		Long: `Align every query contig against every reference target in both orientations
and call the SNVs, insertions and deletions implied by the best alignment.

Target names must follow the <seqid>_<start>-<end> convention so calls can be
placed in genome coordinates. When several targets tie, mate reads aligned to
the reference with bwa mem break the tie; calls from the losing placements are
flagged NC=matefail.`,
		Example: `  vibe-call call --targets targets.fa --queries contigs.augfasta
  vibe-call call --targets targets.fa --queries contigs.augfasta -o calls.vcf --db calls.duckdb
  vibe-call call --targets targets.fa --queries - --mates mates.fq --reference hg38.fa`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				"align.match":      "match",
				"align.mismatch":   "mismatch",
				"align.gap_open":   "gap-open",
				"align.gap_extend": "gap-extend",
				"call.ksize":       "ksize",
				"mates.reads":      "mates",
				"mates.reference":  "reference",
				"mates.bwa":        "bwa",
				"mates.threads":    "threads",
				"mates.cache":      "mate-cache",
				"db.path":          "db",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.targets == "" || opts.queries == "" {
				return usageError{fmt.Errorf("--targets and --queries are required")}
			}
			logger, err := newLogger(viper.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync()
			return runCall(cmd.Context(), logger, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.targets, "targets", "", "Reference target subsequences (FASTA)")
	f.StringVar(&opts.queries, "queries", "", "Query contigs (augmented FASTA, '-' for stdin)")
	f.StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	f.StringVarP(&opts.outputFormat, "output-format", "f", "vcf", "Output format: vcf, tab")

	f.Int("match", align.DefaultMatch, "Alignment match score")
	f.Int("mismatch", align.DefaultMismatch, "Alignment mismatch penalty")
	f.Int("gap-open", align.DefaultGapOpen, "Alignment gap open penalty")
	f.Int("gap-extend", align.DefaultGapExtend, "Alignment gap extension penalty")
	f.IntP("ksize", "k", call.DefaultKSize, "K-mer size for variant windows")
	f.String("mates", "", "Mate reads of interesting reads (FASTQ), for tie breaking")
	f.String("reference", "", "bwa-indexed reference genome, for tie breaking")
	f.String("bwa", "bwa", "bwa executable")
	f.Int("threads", 0, "bwa mem threads (default: bwa's own)")
	f.Bool("mate-cache", true, "Reuse mate placements cached next to the mates file")
	f.String("db", "", "Also store calls in this DuckDB database")

	return cmd
}

func runCall(ctx context.Context, logger *zap.Logger, opts callOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	scoring := align.Scoring{
		Match:     viper.GetInt("align.match"),
		Mismatch:  viper.GetInt("align.mismatch"),
		GapOpen:   viper.GetInt("align.gap_open"),
		GapExtend: viper.GetInt("align.gap_extend"),
	}
	aligner, err := align.New(scoring)
	if err != nil {
		return usageError{fmt.Errorf("invalid alignment scores: %w", err)}
	}
	ksize := viper.GetInt("call.ksize")
	if ksize < 1 {
		return usageError{fmt.Errorf("--ksize must be positive, got %d", ksize)}
	}

	targets, err := seq.LoadTargets(opts.targets)
	if err != nil {
		return err
	}
	queries, err := seq.LoadQueries(opts.queries)
	if err != nil {
		return err
	}
	logger.Info("loaded sequences",
		zap.Int("targets", len(targets)),
		zap.Int("queries", len(queries)))

	caller := call.NewCaller(targets, queries, aligner, ksize)
	caller.SetLogger(logger)
	configureMates(caller, logger)

	var out io.Writer = os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	writer, err := newWriter(opts.outputFormat, out, opts.targets)
	if err != nil {
		return err
	}

	var store *duckdb.Store
	if path := viper.GetString("db.path"); path != "" {
		store, err = duckdb.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	n, err := writeCalls(ctx, caller, writer, store)
	if err != nil {
		return err
	}
	logger.Info("calling complete", zap.Int("calls", n))
	return nil
}

// configureMates enables mate-based tie breaking when both the mates file
// and the reference are configured.
func configureMates(caller *call.Caller, logger *zap.Logger) {
	reads := viper.GetString("mates.reads")
	ref := viper.GetString("mates.reference")
	switch {
	case reads == "" && ref == "":
		return
	case reads == "" || ref == "":
		logger.Warn("mate tie breaking needs both --mates and --reference, disabling",
			zap.String("mates", reads),
			zap.String("reference", ref))
		return
	}

	bwa := mates.NewBWAPlacer(viper.GetString("mates.bwa"), viper.GetInt("mates.threads"))
	bwa.SetLogger(logger)
	var placer call.MatePlacer = bwa
	if viper.GetBool("mates.cache") {
		c := mates.NewCache(bwa)
		c.SetLogger(logger)
		placer = c
	}
	caller.SetMates(placer, reads, ref)
}

func newWriter(format string, w io.Writer, targets string) (output.Writer, error) {
	switch format {
	case "vcf":
		return output.NewVCFWriter(w, []string{"##targets=" + targets}), nil
	case "tab":
		return output.NewTabWriter(w), nil
	default:
		return nil, usageError{fmt.Errorf("unknown output format %q (want vcf or tab)", format)}
	}
}

// writeCalls drains the caller into the writer, and into the store when one
// is given, returning the number of calls written.
func writeCalls(ctx context.Context, caller *call.Caller, w output.Writer, store *duckdb.Store) (int, error) {
	if err := w.WriteHeader(); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	var n int
	var batch []*vcf.Variant
	for {
		v, err := caller.Next(ctx)
		if err != nil {
			w.Flush()
			return n, err
		}
		if v == nil {
			break
		}
		if err := w.Write(v); err != nil {
			return n, fmt.Errorf("writing call: %w", err)
		}
		n++

		if store != nil {
			batch = append(batch, v)
			if len(batch) >= dbBatchSize {
				if err := store.WriteCalls(batch); err != nil {
					return n, err
				}
				batch = batch[:0]
			}
		}
	}

	if store != nil {
		if err := store.WriteCalls(batch); err != nil {
			return n, err
		}
	}
	return n, w.Flush()
}
