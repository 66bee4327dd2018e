package call

import (
	"fmt"
	"strconv"
	"strings"
)

// maxTrailingMatch is the longest trailing match run tolerated as alignment
// noise after the last unmatched run.
const maxTrailingMatch = 5

// CigarOpType is an alignment operation.
type CigarOpType byte

const (
	CigarMatch     CigarOpType = 'M' // match or mismatch
	CigarDeletion  CigarOpType = 'D' // bases present only in the target
	CigarInsertion CigarOpType = 'I' // bases present only in the query
)

// CigarOp is a single run of an alignment operation.
type CigarOp struct {
	Len  int
	Type CigarOpType
}

func (op CigarOp) String() string {
	return strconv.Itoa(op.Len) + string(op.Type)
}

func (op CigarOp) unmatched() bool {
	return op.Type == CigarDeletion || op.Type == CigarInsertion
}

// ParseCigar tokenizes an operation string such as "3D10M2D".
func ParseCigar(s string) ([]CigarOp, error) {
	if s == "" {
		return nil, fmt.Errorf("empty cigar")
	}

	var ops []CigarOp
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if i == start {
			return nil, fmt.Errorf("cigar %q: missing length before %q at %d", s, c, i)
		}
		switch t := CigarOpType(c); t {
		case CigarMatch, CigarDeletion, CigarInsertion:
			n, err := strconv.Atoi(s[start:i])
			if err != nil {
				return nil, fmt.Errorf("cigar %q: %w", s, err)
			}
			ops = append(ops, CigarOp{Len: n, Type: t})
		default:
			return nil, fmt.Errorf("cigar %q: unsupported operation %q", s, c)
		}
		start = i + 1
	}
	if start != len(s) {
		return nil, fmt.Errorf("cigar %q: trailing length without operation", s)
	}
	return ops, nil
}

// FormatCigar joins operations back into an operation string.
func FormatCigar(ops []CigarOp) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.String())
	}
	return b.String()
}

// Shape identifies which simple-variant alignment shape matched.
type Shape int

const (
	ShapeNone       Shape = iota
	ShapeSNV              // nD|I mM nD|I
	ShapeNoisySNV         // nD|I mM nD|I xM, x <= 5
	ShapeIndel            // nD|I mM nD|I mM nD|I
	ShapeNoisyIndel       // nD|I mM nD|I mM nD|I xM, x <= 5
)

func (s Shape) String() string {
	switch s {
	case ShapeSNV:
		return "snv"
	case ShapeNoisySNV:
		return "noisy-snv"
	case ShapeIndel:
		return "indel"
	case ShapeNoisyIndel:
		return "noisy-indel"
	default:
		return "none"
	}
}

// IsIndel reports whether the shape describes a single indel.
func (s Shape) IsIndel() bool {
	return s == ShapeIndel || s == ShapeNoisyIndel
}

// Anchor selects which sequence extends before the aligned block.
type Anchor int

const (
	// TargetAnchored: the alignment begins with target-only bases, so the
	// target is the longer, reference-anchored sequence.
	TargetAnchored Anchor = iota
	// QueryAnchored: the alignment begins with query-only bases, so the
	// target is short and the roles of the two sequences are swapped.
	QueryAnchored
)

func (a Anchor) String() string {
	if a == QueryAnchored {
		return "query"
	}
	return "target"
}

// Interpretation holds the parameters extracted from a recognized shape.
type Interpretation struct {
	Shape  Shape
	Anchor Anchor
	Offset int // length of the leading unmatched run

	// Length is the aligned block length for SNV shapes and the match run
	// preceding the indel for indel shapes.
	Length int

	IndelLength int
	IndelType   CigarOpType // CigarDeletion or CigarInsertion
}

// SignedOffset returns the offset negated for query-anchored alignments.
func (in Interpretation) SignedOffset() int {
	if in.Anchor == QueryAnchored {
		return -in.Offset
	}
	return in.Offset
}

// Interpret matches an operation string against the recognized shapes, in
// priority order. It returns false for inscrutable strings.
func Interpret(cigar string) (Interpretation, bool) {
	ops, err := ParseCigar(cigar)
	if err != nil {
		return Interpretation{}, false
	}
	return InterpretOps(ops)
}

// InterpretOps is Interpret for a tokenized operation string.
func InterpretOps(ops []CigarOp) (Interpretation, bool) {
	var shape Shape
	switch {
	case matchesSNV(ops):
		shape = ShapeSNV
	case matchesSNV(trimNoise(ops, 4)):
		shape = ShapeNoisySNV
	case matchesIndel(ops):
		shape = ShapeIndel
	case matchesIndel(trimNoise(ops, 6)):
		shape = ShapeNoisyIndel
	default:
		return Interpretation{}, false
	}

	in := Interpretation{
		Shape:  shape,
		Anchor: TargetAnchored,
		Offset: ops[0].Len,
		Length: ops[1].Len,
	}
	if ops[0].Type == CigarInsertion {
		in.Anchor = QueryAnchored
	}
	if shape.IsIndel() {
		in.IndelLength = ops[2].Len
		in.IndelType = ops[2].Type
	}
	return in, true
}

// Interpretable reports whether the operation string matches any shape.
func Interpretable(cigar string) bool {
	_, ok := Interpret(cigar)
	return ok
}

func matchesSNV(ops []CigarOp) bool {
	return len(ops) == 3 &&
		ops[0].unmatched() &&
		ops[1].Type == CigarMatch &&
		ops[2].unmatched()
}

func matchesIndel(ops []CigarOp) bool {
	return len(ops) == 5 &&
		ops[0].unmatched() &&
		ops[1].Type == CigarMatch &&
		ops[2].unmatched() &&
		ops[3].Type == CigarMatch &&
		ops[4].unmatched()
}

// trimNoise drops a short trailing match run from an operation list of
// length n. It returns nil if the list does not end in such a run.
func trimNoise(ops []CigarOp, n int) []CigarOp {
	if len(ops) != n {
		return nil
	}
	last := ops[n-1]
	if last.Type != CigarMatch || last.Len > maxTrailingMatch {
		return nil
	}
	return ops[:n-1]
}
