package align

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const core = "ACGAGCAGAGCGCAGA"

func TestSW_Align(t *testing.T) {
	sw, err := New(DefaultScoring())
	require.NoError(t, err)

	target := strings.Repeat("T", 8) + core + strings.Repeat("C", 8)

	tests := []struct {
		name  string
		query string
		cigar string
		score int
	}{
		{"exact", core, "8D16M8D", 16},
		{"lowercase query", strings.ToLower(core), "8D16M8D", 16},
		{"mismatch", core[:8] + "T" + core[9:], "8D16M8D", 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cigar, score, err := sw.Align(target, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.cigar, cigar)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestSW_AlignEmpty(t *testing.T) {
	sw, err := New(DefaultScoring())
	require.NoError(t, err)

	_, _, err = sw.Align("", "ACGT")
	assert.Error(t, err)
	_, _, err = sw.Align("ACGT", "")
	assert.Error(t, err)
}

func TestScoring_Validate(t *testing.T) {
	assert.NoError(t, DefaultScoring().Validate())
	assert.Error(t, Scoring{Match: 0, Mismatch: 1}.Validate())
	assert.Error(t, Scoring{Match: 1, Mismatch: -1}.Validate())
	assert.Error(t, Scoring{Match: 1, GapExtend: -2}.Validate())

	_, err := New(Scoring{})
	assert.Error(t, err)
}

func TestMatrix(t *testing.T) {
	m := matrix(Scoring{Match: 3, Mismatch: 2, GapOpen: 5, GapExtend: 1})
	a := dna.IndexOf('A')
	c := dna.IndexOf('C')
	require.Len(t, m, dna.Len())
	assert.Equal(t, 3, m[a][a])
	assert.Equal(t, -2, m[a][c])
	assert.Equal(t, -1, m[0][a])
	assert.Equal(t, -1, m[c][0])
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ACGTN", normalize("acgtn"))
	assert.Equal(t, "ANNT", normalize("A.XT"))
	assert.Equal(t, "RYKM", normalize("rykm"))
}

func TestAppendOp(t *testing.T) {
	var ops []op
	ops = appendOp(ops, op{0, 'D'})
	ops = appendOp(ops, op{3, 'D'})
	ops = appendOp(ops, op{10, 'M'})
	ops = appendOp(ops, op{2, 'I'})
	assert.Equal(t, "3D10M2I", formatOps(ops))

	ops = appendOverhang(nil, 0, 0)
	assert.Equal(t, "0D", formatOps(ops))
	ops = appendOverhang(nil, 0, 4)
	assert.Equal(t, "4I", formatOps(ops))
}

func TestScore(t *testing.T) {
	sw, err := New(Scoring{Match: 1, Mismatch: 2, GapOpen: 5, GapExtend: 1})
	require.NoError(t, err)

	ops := []op{{1, 'D'}, {3, 'M'}, {3, 'D'}, {4, 'M'}, {0, 'D'}}
	score := sw.score(ops, "ACGTAAACCGT", "CGTCCGG")
	// 3 matches, internal 3D gap costs 5+3, then CCGG vs CCGT: 3 matches 1 mismatch.
	assert.Equal(t, 3-8+3-2, score)

	assert.False(t, internal(ops, 0))
	assert.True(t, internal(ops, 2))
	assert.False(t, internal(ops, 4))
}
