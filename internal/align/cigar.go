package align

import (
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
)

type op struct {
	n int
	t byte
}

// cigarOps converts aligned feature pairs into alignment operations spanning
// the full target (length tlen) and query (length qlen). Overhangs become D
// when the target extends and I when the query extends; the operation list
// always starts and ends with a D or I, of zero length if nothing overhangs.
func cigarOps(pairs []feat.Pair, tlen, qlen int) []op {
	if len(pairs) == 0 {
		return []op{{tlen, 'D'}, {qlen, 'I'}}
	}

	first := pairs[0].Features()
	last := pairs[len(pairs)-1].Features()

	var ops []op
	ops = appendOverhang(ops, first[0].Start(), first[1].Start())
	for _, p := range pairs {
		f := p.Features()
		r := f[0].End() - f[0].Start()
		q := f[1].End() - f[1].Start()
		switch {
		case r > 0 && q > 0:
			ops = appendOp(ops, op{r, 'M'})
		case r > 0:
			ops = appendOp(ops, op{r, 'D'})
		case q > 0:
			ops = appendOp(ops, op{q, 'I'})
		}
	}
	ops = appendOverhang(ops, tlen-last[0].End(), qlen-last[1].End())
	return ops
}

func appendOverhang(ops []op, target, query int) []op {
	if target > 0 {
		ops = appendOp(ops, op{target, 'D'})
	}
	if query > 0 {
		ops = appendOp(ops, op{query, 'I'})
	}
	if target == 0 && query == 0 {
		ops = appendOp(ops, op{0, 'D'})
	}
	return ops
}

// appendOp appends o, merging it into the last operation when both have the
// same type.
func appendOp(ops []op, o op) []op {
	if n := len(ops); n > 0 && ops[n-1].t == o.t {
		ops[n-1].n += o.n
		return ops
	}
	return append(ops, o)
}

func formatOps(ops []op) string {
	var b strings.Builder
	for _, o := range ops {
		b.WriteString(strconv.Itoa(o.n))
		b.WriteByte(o.t)
	}
	return b.String()
}

// score recomputes the alignment score from the operations: matches add,
// mismatches subtract, and every internal gap costs the open penalty plus the
// extension penalty per base. Overhangs at either end are free.
func (a *SW) score(ops []op, target, query string) int {
	s := a.scoring
	var score, ti, qi int
	for i, o := range ops {
		switch o.t {
		case 'M':
			for k := 0; k < o.n; k++ {
				if target[ti+k] == query[qi+k] {
					score += s.Match
				} else {
					score -= s.Mismatch
				}
			}
			ti += o.n
			qi += o.n
		case 'D':
			if internal(ops, i) {
				score -= s.GapOpen + s.GapExtend*o.n
			}
			ti += o.n
		case 'I':
			if internal(ops, i) {
				score -= s.GapOpen + s.GapExtend*o.n
			}
			qi += o.n
		}
	}
	return score
}

// internal reports whether ops[i] lies between two match runs.
func internal(ops []op, i int) bool {
	var before, after bool
	for _, o := range ops[:i] {
		before = before || o.t == 'M'
	}
	for _, o := range ops[i+1:] {
		after = after || o.t == 'M'
	}
	return before && after
}
