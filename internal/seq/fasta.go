package seq

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// LoadTargets reads reference target sequences from a FASTA file.
// Target names are expected to follow the <seqid>_<start>-<end> convention.
func LoadTargets(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open target FASTA: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return ReadTargets(r)
}

// ReadTargets reads FASTA records from r.
func ReadTargets(r io.Reader) ([]*Record, error) {
	var records []*Record
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		records = append(records, &Record{Name: s.ID, Sequence: string(b)})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("scan target FASTA: %w", err)
	}
	return records, nil
}
