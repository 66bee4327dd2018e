package call

import (
	"fmt"
	"sort"

	"github.com/inodb/vibe-call/internal/seq"
)

// Aligner computes a pairwise alignment of query against target and returns
// its operation string and score.
type Aligner interface {
	Align(target, query string) (cigar string, score int, err error)
}

// Strand is the orientation of the query in an alignment.
type Strand int

const (
	Forward Strand = 1
	Reverse Strand = -1
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Candidate is one alignment of a query against a target.
type Candidate struct {
	Target *seq.Record
	Cigar  string
	Score  int
	Strand Strand
}

// AlignBothStrands aligns query and its reverse complement against target and
// keeps the higher-scoring orientation. The forward strand wins ties.
func AlignBothStrands(a Aligner, target *seq.Record, query string) (Candidate, error) {
	fwdCigar, fwdScore, err := a.Align(target.Sequence, query)
	if err != nil {
		return Candidate{}, fmt.Errorf("align to %s: %w", target.Name, err)
	}
	revCigar, revScore, err := a.Align(target.Sequence, seq.ReverseComplement(query))
	if err != nil {
		return Candidate{}, fmt.Errorf("align reverse complement to %s: %w", target.Name, err)
	}

	if revScore > fwdScore {
		return Candidate{Target: target, Cigar: revCigar, Score: revScore, Strand: Reverse}, nil
	}
	return Candidate{Target: target, Cigar: fwdCigar, Score: fwdScore, Strand: Forward}, nil
}

// Selector aligns a query against every target and picks the best placements.
type Selector struct {
	aligner Aligner
}

// NewSelector creates a selector using the given aligner.
func NewSelector(a Aligner) *Selector {
	return &Selector{aligner: a}
}

// Candidates aligns query against every target and returns one candidate per
// target, sorted by score (highest first, input order among equal scores).
func (s *Selector) Candidates(targets []*seq.Record, query *seq.Record) ([]Candidate, error) {
	cands := make([]Candidate, 0, len(targets))
	for _, t := range targets {
		c, err := AlignBothStrands(s.aligner, t, query.Sequence)
		if err != nil {
			return nil, err
		}
		cands = append(cands, c)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	return cands, nil
}

// SelectBest narrows score-sorted candidates to those worth reporting: a lone
// candidate is always reported; otherwise interpretable candidates are
// preferred (falling back to all) and only those tied at the top score kept.
func SelectBest(cands []Candidate) []Candidate {
	if len(cands) <= 1 {
		return cands
	}

	pool := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if Interpretable(c.Cigar) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = cands
	}

	best := pool[0].Score
	tied := make([]Candidate, 0, 1)
	for _, c := range pool {
		if c.Score == best {
			tied = append(tied, c)
		}
	}
	return tied
}

// SortByMateDistance orders tied candidates by the mean distance of the
// mates placed near each target, closest first. Equal distances keep their
// order.
func SortByMateDistance(cands []Candidate, mates []MatePosition) error {
	dist := make(map[*seq.Record]float64, len(cands))
	for _, c := range cands {
		seqid, pos, err := LocalToGlobal(0, c.Target.Name)
		if err != nil {
			return err
		}
		dist[c.Target] = MateDistance(mates, seqid, pos)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return dist[cands[i].Target] < dist[cands[j].Target]
	})
	return nil
}
