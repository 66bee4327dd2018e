package call

import "errors"

// ErrAlleleLength is returned when an indel allele does not have the length
// implied by the alignment. It indicates an inconsistency between the
// alignment and the sequences it was computed from.
var ErrAlleleLength = errors.New("indel allele length mismatch")

// alleles are the reference and alternate alleles of an indel together with
// the k-mer windows around them.
type alleles struct {
	ref, alt             string
	refWindow, altWindow string
}

// swap exchanges the roles of the two sequences, used when the alignment is
// query-anchored and the builders ran with target and query reversed.
func (a alleles) swap() alleles {
	return alleles{
		ref:       a.alt,
		alt:       a.ref,
		refWindow: a.altWindow,
		altWindow: a.refWindow,
	}
}

// deletionAllele builds a deletion of indelLength bases from long, which
// starts offset bases before short. leftmatch is the match run preceding the
// deletion.
func deletionAllele(long, short string, offset, ksize, leftmatch, indelLength int) alleles {
	minpos := leftmatch - ksize + 1
	maxpos := leftmatch + ksize - 1
	altWindow := substr(short, minpos, maxpos)
	refWindow := substr(long, minpos+offset, maxpos+offset+indelLength)

	ref := substr(long, offset+leftmatch-1, offset+leftmatch+indelLength)
	return alleles{
		ref:       ref,
		alt:       substr(ref, 0, 1),
		refWindow: refWindow,
		altWindow: altWindow,
	}
}

// insertionAllele builds an insertion of indelLength bases carried by short,
// the mirror of deletionAllele.
func insertionAllele(long, short string, offset, ksize, leftmatch, indelLength int) alleles {
	minpos := leftmatch - ksize + 1
	maxpos := leftmatch + ksize + indelLength - 1
	altWindow := substr(short, minpos, maxpos)
	refWindow := substr(long, minpos+offset, maxpos+offset-indelLength)

	alt := substr(short, leftmatch-1, leftmatch+indelLength)
	return alleles{
		ref:       substr(alt, 0, 1),
		alt:       alt,
		refWindow: refWindow,
		altWindow: altWindow,
	}
}

// substr returns s[start:end] with both bounds clamped to s.
func substr(s string, start, end int) string {
	start = max(start, 0)
	end = min(end, len(s))
	if start >= end {
		return ""
	}
	return s[start:end]
}
