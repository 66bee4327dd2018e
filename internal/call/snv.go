package call

import (
	"strconv"
	"strings"

	"github.com/inodb/vibe-call/internal/seq"
	"github.com/inodb/vibe-call/internal/vcf"
)

// CallSNV compares the aligned block of target and query base by base and
// calls an SNV at every mismatch. A block without mismatches yields a single
// perfectmatch no-call.
func CallSNV(target, query *seq.Record, in Interpretation, ksize int) ([]*vcf.Variant, error) {
	var t, q string
	var blockStart int // target-local coordinate of the block
	switch in.Anchor {
	case QueryAnchored:
		t = substr(target.Sequence, 0, in.Length)
		q = substr(query.Sequence, in.Offset, in.Offset+in.Length)
	default:
		blockStart = in.Offset
		t = substr(target.Sequence, in.Offset, in.Offset+in.Length)
		q = substr(query.Sequence, 0, in.Length)
	}

	n := min(len(t), len(q))
	var diffs []int
	for i := 0; i < n; i++ {
		if t[i] != q[i] {
			diffs = append(diffs, i)
		}
	}

	if len(diffs) == 0 {
		seqid, pos, err := LocalToGlobal(blockStart, target.Name)
		if err != nil {
			return nil, err
		}
		return []*vcf.Variant{
			vcf.NewNoCall(seqid, pos, vcf.ReasonPerfectMatch, vcf.Info{QN: query.Name, QS: q}),
		}, nil
	}

	ikmers := strconv.Itoa(len(query.IKmers))
	snvs := make([]*vcf.Variant, 0, len(diffs))
	for _, i := range diffs {
		minpos := max(i-ksize+1, 0)
		maxpos := min(i+ksize, in.Length)

		seqid, pos, err := LocalToGlobal(blockStart+i, target.Name)
		if err != nil {
			return nil, err
		}
		snvs = append(snvs, vcf.New(seqid, pos,
			strings.ToUpper(t[i:i+1]), strings.ToUpper(q[i:i+1]),
			vcf.Info{
				VW: substr(q, minpos, maxpos),
				RW: substr(t, minpos, maxpos),
				IK: ikmers,
			}))
	}
	return snvs, nil
}
