package call

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalToGlobal(t *testing.T) {
	seqid, pos, err := LocalToGlobal(50, "chr1_1000-2000")
	require.NoError(t, err)
	assert.Equal(t, "chr1", seqid)
	assert.Equal(t, int64(1050), pos)

	seqid, pos, err = LocalToGlobal(0, "scaffold_12_0-500")
	require.NoError(t, err)
	assert.Equal(t, "scaffold_12", seqid)
	assert.Equal(t, int64(0), pos)

	for _, id := range []string{"chr1", "chr1:1000-2000", "chr1_1000", ""} {
		_, _, err := LocalToGlobal(5, id)
		assert.Truef(t, errors.Is(err, ErrSubseqID), "id %q: got %v", id, err)
	}
}

func TestParseCigar(t *testing.T) {
	ops, err := ParseCigar("3D10M2D")
	require.NoError(t, err)
	assert.Equal(t, []CigarOp{
		{Len: 3, Type: CigarDeletion},
		{Len: 10, Type: CigarMatch},
		{Len: 2, Type: CigarDeletion},
	}, ops)
	assert.Equal(t, "3D10M2D", FormatCigar(ops))

	for _, bad := range []string{"", "abc", "M", "10", "3D10X", "3DD"} {
		_, err := ParseCigar(bad)
		assert.Errorf(t, err, "cigar %q", bad)
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		cigar string
		ok    bool
		want  Interpretation
	}{
		{"3D10M2D", true, Interpretation{Shape: ShapeSNV, Anchor: TargetAnchored, Offset: 3, Length: 10}},
		{"3I10M2I", true, Interpretation{Shape: ShapeSNV, Anchor: QueryAnchored, Offset: 3, Length: 10}},
		{"3D10M2D4M", true, Interpretation{Shape: ShapeNoisySNV, Anchor: TargetAnchored, Offset: 3, Length: 10}},
		{"3D10M2D5M", true, Interpretation{Shape: ShapeNoisySNV, Anchor: TargetAnchored, Offset: 3, Length: 10}},
		{"3D10M2D6M", false, Interpretation{}},
		{"2D5M3D5M2D", true, Interpretation{Shape: ShapeIndel, Anchor: TargetAnchored, Offset: 2, Length: 5,
			IndelLength: 3, IndelType: CigarDeletion}},
		{"2I5M1I5M2I", true, Interpretation{Shape: ShapeIndel, Anchor: QueryAnchored, Offset: 2, Length: 5,
			IndelLength: 1, IndelType: CigarInsertion}},
		{"2D5M3D5M2D1M", true, Interpretation{Shape: ShapeNoisyIndel, Anchor: TargetAnchored, Offset: 2, Length: 5,
			IndelLength: 3, IndelType: CigarDeletion}},
		{"2D5M3D5M2D9M", false, Interpretation{}},
		{"10M", false, Interpretation{}},
		{"3D10M", false, Interpretation{}},
		{"3D4M1D4M1D4M2D", false, Interpretation{}},
		{"abc", false, Interpretation{}},
	}
	for _, tt := range tests {
		t.Run(tt.cigar, func(t *testing.T) {
			got, ok := Interpret(tt.cigar)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, Interpretable(tt.cigar))
		})
	}
}

func TestInterpretation_SignedOffset(t *testing.T) {
	in, ok := Interpret("4I10M2I")
	require.True(t, ok)
	assert.Equal(t, -4, in.SignedOffset())

	in, ok = Interpret("4D10M2D")
	require.True(t, ok)
	assert.Equal(t, 4, in.SignedOffset())
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "snv", ShapeSNV.String())
	assert.Equal(t, "noisy-indel", ShapeNoisyIndel.String())
	assert.Equal(t, "none", ShapeNone.String())
	assert.True(t, ShapeNoisyIndel.IsIndel())
	assert.False(t, ShapeNoisySNV.IsIndel())
}

func TestSubstr(t *testing.T) {
	assert.Equal(t, "CGT", substr("ACGTA", 1, 4))
	assert.Equal(t, "AC", substr("ACGTA", -3, 2))
	assert.Equal(t, "TA", substr("ACGTA", 3, 40))
	assert.Equal(t, "", substr("ACGTA", 4, 2))
	assert.Equal(t, "", substr("", 0, 1))
}
