package call

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/inodb/vibe-call/internal/seq"
	"github.com/inodb/vibe-call/internal/vcf"
)

// DefaultKSize is the default k-mer size used for variant windows.
const DefaultKSize = 31

// Caller aligns each query against all targets and yields the resulting
// variant calls one at a time. A Caller is not safe for concurrent use.
type Caller struct {
	targets  []*seq.Record
	queries  []*seq.Record
	selector *Selector
	ksize    int
	mates    *MateCache
	logger   *zap.Logger

	next    int
	pending []*vcf.Variant
}

// NewCaller creates a caller. Targets are ordered by name and queries longest
// first; neither input slice is modified.
func NewCaller(targets, queries []*seq.Record, aligner Aligner, ksize int) *Caller {
	t := append([]*seq.Record(nil), targets...)
	sort.SliceStable(t, func(i, j int) bool { return t[i].Name < t[j].Name })

	q := append([]*seq.Record(nil), queries...)
	sort.SliceStable(q, func(i, j int) bool { return q[i].Len() > q[j].Len() })

	return &Caller{
		targets:  t,
		queries:  q,
		selector: NewSelector(aligner),
		ksize:    ksize,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and tie-break messages.
func (c *Caller) SetLogger(l *zap.Logger) {
	c.logger = l
}

// SetMates enables mate-based tie breaking. Mate placements are computed on
// the first unresolved tie and reused for the rest of the run. Empty file
// names disable it.
func (c *Caller) SetMates(placer MatePlacer, readsFile, refFile string) {
	if placer == nil || readsFile == "" || refFile == "" {
		c.mates = nil
		return
	}
	c.mates = NewMateCache(placer, readsFile, refFile)
}

// Next returns the next call. It returns nil, nil once every query has been
// processed.
func (c *Caller) Next(ctx context.Context) (*vcf.Variant, error) {
	for len(c.pending) == 0 {
		if c.next >= len(c.queries) {
			return nil, nil
		}
		if len(c.targets) == 0 {
			c.logger.Warn("no targets to align against, skipping all queries",
				zap.Int("queries", len(c.queries)))
			c.next = len(c.queries)
			return nil, nil
		}

		query := c.queries[c.next]
		c.next++
		calls, err := c.callQuery(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", query.Name, err)
		}
		c.pending = calls
	}

	v := c.pending[0]
	c.pending = c.pending[1:]
	return v, nil
}

// All drains the caller.
func (c *Caller) All(ctx context.Context) ([]*vcf.Variant, error) {
	var all []*vcf.Variant
	for {
		v, err := c.Next(ctx)
		if err != nil {
			return all, err
		}
		if v == nil {
			return all, nil
		}
		all = append(all, v)
	}
}

func (c *Caller) callQuery(ctx context.Context, query *seq.Record) ([]*vcf.Variant, error) {
	cands, err := c.selector.Candidates(c.targets, query)
	if err != nil {
		return nil, err
	}
	tied := SelectBest(cands)

	c.logger.Debug("aligned query",
		zap.String("query", query.Name),
		zap.Int("candidates", len(cands)),
		zap.Int("tied", len(tied)))

	var mates []MatePosition
	if len(tied) > 1 {
		if c.mates != nil {
			if !c.mates.Loaded() {
				c.logger.Info("placing mate reads",
					zap.String("reads", c.mates.readsFile),
					zap.String("reference", c.mates.refFile))
			}
			mates, err = c.mates.Positions(ctx)
			if err != nil {
				return nil, err
			}
			if err := SortByMateDistance(tied, mates); err != nil {
				return nil, err
			}
		} else {
			c.logger.Warn("unresolved tie between alignments",
				zap.String("query", query.Name),
				zap.Int("tied", len(tied)),
				zap.Int("score", tied[0].Score))
		}
	}

	var calls []*vcf.Variant
	for i, cand := range tied {
		q := query
		if cand.Strand == Reverse {
			q = query.WithSequence(seq.ReverseComplement(query.Sequence))
		}
		vars, err := MakeCall(cand.Target, q, cand.Cigar, c.ksize)
		if err != nil {
			return nil, err
		}
		if i > 0 && len(mates) > 0 {
			for _, v := range vars {
				v.SetNoCall(vcf.ReasonMateFail)
			}
		}
		calls = append(calls, vars...)
	}
	return calls, nil
}
