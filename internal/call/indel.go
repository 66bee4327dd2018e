package call

import (
	"fmt"
	"strconv"

	"github.com/inodb/vibe-call/internal/seq"
	"github.com/inodb/vibe-call/internal/vcf"
)

// CallDeletion calls a deletion of in.IndelLength bases relative to the target.
//
// When the query is longer than the target the deletion allele is built from
// the query's point of view and can be shorter than the alignment implies,
// so its length is not checked.
func CallDeletion(target, query *seq.Record, in Interpretation, ksize int) ([]*vcf.Variant, error) {
	var a alleles
	switch in.Anchor {
	case QueryAnchored:
		a = insertionAllele(query.Sequence, target.Sequence, in.Offset, ksize, in.Length, in.IndelLength).swap()
	default:
		a = deletionAllele(target.Sequence, query.Sequence, in.Offset, ksize, in.Length, in.IndelLength)
	}
	if a.ref == "" {
		return nil, fmt.Errorf("%w: empty deletion allele for %s against %s", ErrAlleleLength, query.Name, target.Name)
	}
	return indelCall(target, query, in, a)
}

// CallInsertion calls an insertion of in.IndelLength bases relative to the
// target. The alternate allele must be exactly in.IndelLength+1 bases.
func CallInsertion(target, query *seq.Record, in Interpretation, ksize int) ([]*vcf.Variant, error) {
	var a alleles
	switch in.Anchor {
	case QueryAnchored:
		a = deletionAllele(query.Sequence, target.Sequence, in.Offset, ksize, in.Length, in.IndelLength).swap()
	default:
		a = insertionAllele(target.Sequence, query.Sequence, in.Offset, ksize, in.Length, in.IndelLength)
	}
	if len(a.alt) != in.IndelLength+1 {
		return nil, fmt.Errorf("%w: insertion allele %q for %s against %s, expected %d bases",
			ErrAlleleLength, a.alt, query.Name, target.Name, in.IndelLength+1)
	}
	return indelCall(target, query, in, a)
}

// indelCall places an indel at the anchor base preceding the unmatched run.
func indelCall(target, query *seq.Record, in Interpretation, a alleles) ([]*vcf.Variant, error) {
	local := in.Length
	if in.Anchor == TargetAnchored {
		local += in.Offset
	}
	seqid, pos, err := LocalToGlobal(local, target.Name)
	if err != nil {
		return nil, err
	}
	return []*vcf.Variant{
		vcf.New(seqid, pos-1, a.ref, a.alt, vcf.Info{
			VW: a.altWindow,
			RW: a.refWindow,
			IK: strconv.Itoa(len(query.IKmers)),
		}),
	}, nil
}
