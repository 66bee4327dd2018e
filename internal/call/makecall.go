package call

import (
	"github.com/inodb/vibe-call/internal/seq"
	"github.com/inodb/vibe-call/internal/vcf"
)

// MakeCall interprets the alignment of query against target and calls the
// variants it describes. Alignments that match none of the recognized shapes
// produce a single inscrutablecigar no-call carrying the raw operation string.
func MakeCall(target, query *seq.Record, cigar string, ksize int) ([]*vcf.Variant, error) {
	in, ok := Interpret(cigar)
	if !ok {
		seqid, pos, err := LocalToGlobal(0, target.Name)
		if err != nil {
			return nil, err
		}
		return []*vcf.Variant{
			vcf.NewNoCall(seqid, pos, vcf.ReasonInscrutableCigar, vcf.Info{
				QN: query.Name,
				QS: query.Sequence,
				CG: cigar,
			}),
		}, nil
	}

	switch {
	case !in.Shape.IsIndel():
		return CallSNV(target, query, in, ksize)
	case in.IndelType == CigarDeletion:
		return CallDeletion(target, query, in, ksize)
	default:
		return CallInsertion(target, query, in, ksize)
	}
}
