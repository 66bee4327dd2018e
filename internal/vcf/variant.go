// Package vcf provides the variant call model and its VCF line format.
package vcf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NoCallAllele marks both alleles of a no-call record.
const NoCallAllele = "."

// No-call reason codes stored in the NC attribute.
const (
	ReasonPerfectMatch     = "perfectmatch"
	ReasonInscrutableCigar = "inscrutablecigar"
	ReasonMateFail         = "matefail"
)

// Info holds the INFO attributes of a call. Empty strings are unset.
type Info struct {
	NC string // no-call reason
	QN string // query contig name
	QS string // query sequence, always serialized last
	VW string // variant window
	RW string // reference window
	IK string // number of supporting interesting k-mers
	CG string // raw alignment operation string
	GT string // comma-separated genotypes

	Extra map[string]string // any other keys
}

// Variant is a single variant call or no-call.
type Variant struct {
	Seqid string // reference sequence name (e.g. "chr1")
	Ref   string // reference allele, "." for no-calls
	Alt   string // alternate allele, "." for no-calls
	Info  Info

	pos int64 // 0-based
}

// New creates a variant at the given 0-based position.
func New(seqid string, pos int64, ref, alt string, info Info) *Variant {
	return &Variant{Seqid: seqid, pos: pos, Ref: ref, Alt: alt, Info: info}
}

// NewNoCall creates a no-call record with the given reason.
func NewNoCall(seqid string, pos int64, reason string, info Info) *Variant {
	info.NC = reason
	return New(seqid, pos, NoCallAllele, NoCallAllele, info)
}

// Position returns the 0-based genomic position.
func (v *Variant) Position() int64 {
	return v.pos
}

// IsNoCall returns true if no variant could be assigned.
func (v *Variant) IsNoCall() bool {
	return v.Ref == NoCallAllele && v.Alt == NoCallAllele
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1 && v.Ref != v.Alt
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// IsInsertion returns true if the variant is an insertion.
func (v *Variant) IsInsertion() bool {
	return len(v.Alt) > len(v.Ref)
}

// IsDeletion returns true if the variant is a deletion.
func (v *Variant) IsDeletion() bool {
	return len(v.Ref) > len(v.Alt)
}

// SetNoCall overwrites the no-call reason while keeping the alleles.
// It is used to flag calls from unresolved alignment ties.
func (v *Variant) SetNoCall(reason string) {
	v.Info.NC = reason
}

// Window returns the variant window (VW).
//
// The variant window is the interval of the query contig covering every
// k-mer that overlaps the variant:
//
//	GCCTAGTTAGCTAACGTCCCGATCACTGTGTCACTGC
//	            .....A
//	             ....A.
//	              ...A..
//	               ..A...
//	                .A....
//	                 A.....
//	            [---------]   window for k=6
func (v *Variant) Window() string {
	return v.Info.VW
}

// RefWindow returns the reference window (RW), the window of the
// reference sequence matching Window.
func (v *Variant) RefWindow() string {
	return v.Info.RW
}

// Cigar returns the raw operation string recorded on inscrutable no-calls.
func (v *Variant) Cigar() string {
	return v.Info.CG
}

// Genotypes returns the genotype tuple, or nil if none was recorded.
func (v *Variant) Genotypes() []string {
	if v.Info.GT == "" {
		return nil
	}
	return strings.Split(v.Info.GT, ",")
}

// SupportingKmers returns the IK count, or 0 if unset.
func (v *Variant) SupportingKmers() int {
	n, err := strconv.Atoi(v.Info.IK)
	if err != nil {
		return 0
	}
	return n
}

// Attributes returns the set INFO attributes keyed by their VCF key.
func (v *Variant) Attributes() map[string]string {
	attrs := make(map[string]string, len(v.Info.Extra)+8)
	for k, val := range v.Info.Extra {
		if val != "" {
			attrs[k] = val
		}
	}
	for _, kv := range []struct{ key, value string }{
		{"NC", v.Info.NC},
		{"QN", v.Info.QN},
		{"QS", v.Info.QS},
		{"VW", v.Info.VW},
		{"RW", v.Info.RW},
		{"IK", v.Info.IK},
		{"CG", v.Info.CG},
		{"GT", v.Info.GT},
	} {
		if kv.value != "" {
			attrs[kv.key] = kv.value
		}
	}
	return attrs
}

// Filter returns the VCF FILTER value: PASS for calls, "." for no-calls.
func (v *Variant) Filter() string {
	if v.Ref != NoCallAllele {
		return "PASS"
	}
	return "."
}

// InfoString formats the INFO column. Keys are sorted alphabetically except
// QS, which always comes last.
func (v *Variant) InfoString() string {
	attrs := v.Attributes()
	if len(attrs) == 0 {
		return "."
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k != "QS" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := attrs["QS"]; ok {
		keys = append(keys, "QS")
	}

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + strings.ReplaceAll(attrs[k], ";", ":")
	}
	return strings.Join(pairs, ";")
}

// VCF formats the variant as a tab-separated VCF data line without newline.
func (v *Variant) VCF() string {
	return strings.Join([]string{
		v.Seqid,
		strconv.FormatInt(v.pos+1, 10),
		".",
		v.Ref,
		v.Alt,
		".",
		v.Filter(),
		v.InfoString(),
	}, "\t")
}

// String returns a short human-readable description.
//
// Indel positions are shifted by one past the anchor base shared by both
// alleles, so they remain 0-based but point at the first inserted or
// deleted base.
func (v *Variant) String() string {
	switch {
	case v.IsDeletion():
		return fmt.Sprintf("%s:%d:%dD", v.Seqid, v.pos+1, len(v.Ref)-len(v.Alt))
	case v.IsInsertion():
		return fmt.Sprintf("%s:%d:I->%s", v.Seqid, v.pos+1, v.Alt[1:])
	default:
		return fmt.Sprintf("%s:%d:%s->%s", v.Seqid, v.pos, v.Ref, v.Alt)
	}
}
