// Package seq provides sequence records and their loaders.
package seq

// Record is a named nucleotide sequence. Query contigs also carry the
// interesting k-mers that support them.
type Record struct {
	Name     string
	Sequence string
	IKmers   []IKmer
	Mates    []string // mate read sequences attached to a query, if any
}

// IKmer is an interesting k-mer annotated on a query contig.
type IKmer struct {
	Sequence string
	Offset   int   // 0-based offset within the contig
	Counts   []int // abundance per sample, case first
}

// Len returns the sequence length.
func (r *Record) Len() int {
	return len(r.Sequence)
}

// WithSequence returns a shallow copy of r carrying a different sequence.
func (r *Record) WithSequence(s string) *Record {
	c := *r
	c.Sequence = s
	return &c
}

var complement = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	for _, p := range []string{"AT", "CG", "GC", "TA", "at", "cg", "gc", "ta"} {
		t[p[0]] = p[1]
	}
	return t
}()

// ReverseComplement returns the reverse complement of a nucleotide sequence.
// Case is preserved and non-ACGT symbols are kept as is.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = complement[s[i]]
	}
	return string(out)
}
