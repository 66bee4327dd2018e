package call

import (
	"context"
	"fmt"
	"math"
)

// MatePosition is the placement of one mate read on the reference.
type MatePosition struct {
	Seqid string
	Pos   int64 // 0-based
}

// MatePlacer aligns mate reads to a reference and reports where they land.
type MatePlacer interface {
	Place(ctx context.Context, readsFile, refFile string) ([]MatePosition, error)
}

// MateCache computes mate placements at most once.
type MateCache struct {
	placer    MatePlacer
	readsFile string
	refFile   string

	loaded    bool
	positions []MatePosition
}

// NewMateCache creates a cache that will place readsFile against refFile.
func NewMateCache(placer MatePlacer, readsFile, refFile string) *MateCache {
	return &MateCache{placer: placer, readsFile: readsFile, refFile: refFile}
}

// Positions returns the mate placements, invoking the placer on first use.
// A failed placement is not cached.
func (mc *MateCache) Positions(ctx context.Context) ([]MatePosition, error) {
	if mc.loaded {
		return mc.positions, nil
	}
	positions, err := mc.placer.Place(ctx, mc.readsFile, mc.refFile)
	if err != nil {
		return nil, fmt.Errorf("place mates: %w", err)
	}
	mc.positions = positions
	mc.loaded = true
	return positions, nil
}

// Loaded reports whether placements have been computed.
func (mc *MateCache) Loaded() bool {
	return mc.loaded
}

// MateDistance returns the mean absolute distance between pos and the mates
// placed on seqid. It returns +Inf when no mate is placed on seqid.
func MateDistance(mates []MatePosition, seqid string, pos int64) float64 {
	var sum float64
	var n int
	for _, m := range mates {
		if m.Seqid != seqid {
			continue
		}
		d := m.Pos - pos
		if d < 0 {
			d = -d
		}
		sum += float64(d)
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	return sum / float64(n)
}
