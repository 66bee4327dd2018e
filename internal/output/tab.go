// Package output provides call output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-call/internal/vcf"
)

// Writer is implemented by every call output format.
type Writer interface {
	WriteHeader() error
	Write(v *vcf.Variant) error
	Flush() error
}

// TabWriter writes calls in tab-delimited format, one row per call.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Uploaded_variation",
			"Location",
			"Ref",
			"Alt",
			"Type",
			"Filter",
			"No_call",
			"Query",
			"Supporting_kmers",
			"Variant_window",
			"Reference_window",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single call.
func (tw *TabWriter) Write(v *vcf.Variant) error {
	// 1-based, like the VCF POS column
	location := fmt.Sprintf("%s:%d", v.Seqid, v.Position()+1)

	kmers := "-"
	if v.Info.IK != "" {
		kmers = strconv.Itoa(v.SupportingKmers())
	}

	values := []string{
		v.String(),
		location,
		v.Ref,
		v.Alt,
		callType(v),
		v.Filter(),
		dash(v.Info.NC),
		dash(v.Info.QN),
		kmers,
		dash(v.Window()),
		dash(v.RefWindow()),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func callType(v *vcf.Variant) string {
	switch {
	case v.IsNoCall():
		return "no_call"
	case v.IsSNV():
		return "SNV"
	case v.IsInsertion():
		return "insertion"
	case v.IsDeletion():
		return "deletion"
	default:
		return "-"
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
