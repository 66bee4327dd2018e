// Package align computes pairwise alignments of contigs against reference
// targets using biogo's affine-gap Smith-Waterman implementation.
package align

import (
	"fmt"
	"strings"

	bioalign "github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Default scoring parameters.
const (
	DefaultMatch     = 1
	DefaultMismatch  = 2
	DefaultGapOpen   = 5
	DefaultGapExtend = 0
)

// Scoring holds alignment scores. Mismatch and gap penalties are positive
// numbers subtracted from the score.
type Scoring struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// DefaultScoring returns the default scoring parameters.
func DefaultScoring() Scoring {
	return Scoring{
		Match:     DefaultMatch,
		Mismatch:  DefaultMismatch,
		GapOpen:   DefaultGapOpen,
		GapExtend: DefaultGapExtend,
	}
}

// Validate checks that the scores describe a usable alignment.
func (s Scoring) Validate() error {
	if s.Match <= 0 {
		return fmt.Errorf("match score must be positive, got %d", s.Match)
	}
	if s.Mismatch < 0 || s.GapOpen < 0 || s.GapExtend < 0 {
		return fmt.Errorf("penalties must not be negative (mismatch %d, gap open %d, gap extend %d)",
			s.Mismatch, s.GapOpen, s.GapExtend)
	}
	return nil
}

var dna = alphabet.DNAredundant

// SW aligns sequences with Smith-Waterman local alignment and affine gaps.
// Unaligned target or query ends are reported as leading and trailing D or I
// operations so the operation string always spans both sequences.
type SW struct {
	scoring Scoring
	sw      bioalign.SWAffine
}

// New creates an aligner with the given scoring.
func New(s Scoring) (*SW, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &SW{
		scoring: s,
		sw: bioalign.SWAffine{
			Matrix:  matrix(s),
			GapOpen: -s.GapOpen,
		},
	}, nil
}

// Scoring returns the aligner's scoring parameters.
func (a *SW) Scoring() Scoring {
	return a.scoring
}

// Align aligns query against target and returns the operation string and
// alignment score.
func (a *SW) Align(target, query string) (string, int, error) {
	t := normalize(target)
	q := normalize(query)
	if len(t) == 0 || len(q) == 0 {
		return "", 0, fmt.Errorf("align: empty sequence (target %d bp, query %d bp)", len(t), len(q))
	}

	ref := linear.NewSeq("target", alphabet.BytesToLetters([]byte(t)), dna)
	qry := linear.NewSeq("query", alphabet.BytesToLetters([]byte(q)), dna)
	pairs, err := a.sw.Align(ref, qry)
	if err != nil {
		return "", 0, fmt.Errorf("align: %w", err)
	}

	ops := cigarOps(pairs, len(t), len(q))
	return formatOps(ops), a.score(ops, t, q), nil
}

// matrix builds the substitution table indexed by alphabet position. Index 0
// is the gap letter and carries the per-base extension penalty.
func matrix(s Scoring) bioalign.Linear {
	n := dna.Len()
	m := make(bioalign.Linear, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			switch {
			case i == 0 && j == 0:
			case i == 0 || j == 0:
				m[i][j] = -s.GapExtend
			case i == j:
				m[i][j] = s.Match
			default:
				m[i][j] = -s.Mismatch
			}
		}
	}
	return m
}

const iupac = "ACGTMRWSYKVHDBN"

// normalize uppercases s and replaces letters outside the IUPAC DNA codes
// with N.
func normalize(s string) string {
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(iupac, r) {
			return r
		}
		return 'N'
	}, s)
}
