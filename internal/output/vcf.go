package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/inodb/vibe-call/internal/vcf"
)

// infoFields describes the INFO keys written by the caller, in header order.
var infoFields = []struct {
	ID          string
	Number      string
	Type        string
	Description string
}{
	{"CG", "1", "String", "Alignment operation string of an inscrutable alignment"},
	{"GT", ".", "String", "Comma-separated genotypes"},
	{"IK", "1", "Integer", "Number of interesting k-mers supporting the call"},
	{"NC", "1", "String", "Reason no call or a low-confidence call was made"},
	{"QN", "1", "String", "Name of the query contig"},
	{"QS", "1", "String", "Sequence of the query contig"},
	{"RW", "1", "String", "Reference window spanning all k-mers overlapping the variant"},
	{"VW", "1", "String", "Variant window spanning all k-mers overlapping the variant"},
}

// VCFWriter writes calls as VCF lines preceded by a header.
type VCFWriter struct {
	w           *bufio.Writer
	headerLines []string // extra ## lines, e.g. ##reference=
}

// NewVCFWriter creates a new VCF output writer. headerLines are written after
// the fileformat and source lines.
func NewVCFWriter(w io.Writer, headerLines []string) *VCFWriter {
	return &VCFWriter{
		w:           bufio.NewWriter(w),
		headerLines: headerLines,
	}
}

// WriteHeader writes the meta-information lines, INFO definitions and the
// #CHROM column line.
func (vw *VCFWriter) WriteHeader() error {
	lines := []string{
		"##fileformat=VCFv4.2",
		"##source=vibe-call",
	}
	lines = append(lines, vw.headerLines...)
	for _, f := range infoFields {
		lines = append(lines, fmt.Sprintf("##INFO=<ID=%s,Number=%s,Type=%s,Description=%q>",
			f.ID, f.Number, f.Type, f.Description))
	}
	lines = append(lines,
		`##FILTER=<ID=PASS,Description="All filters passed">`,
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
	)

	for _, line := range lines {
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a single call.
func (vw *VCFWriter) Write(v *vcf.Variant) error {
	_, err := vw.w.WriteString(v.VCF() + "\n")
	return err
}

// Flush flushes the underlying writer.
func (vw *VCFWriter) Flush() error {
	return vw.w.Flush()
}
