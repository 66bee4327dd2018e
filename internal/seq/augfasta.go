package seq

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const mateSuffix = "#mateseq"

// LoadQueries reads query contigs from an augmented FASTA file.
//
// Augmented FASTA records carry annotation lines after the sequence:
//
//	>contig1
//	GCCTAGTTAGCTAACGTCCCGATCACTG
//	      GTTAGCTAAC         12 0 0#
//	TTAGCGATCGACTAGCTAGG#mateseq
//
// Interesting k-mers are indented by their offset and end with '#' after
// their per-sample abundances; mate sequences end with "#mateseq".
func LoadQueries(path string) ([]*Record, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open query file: %w", err)
		}
		defer f.Close()
		r = f

		if strings.HasSuffix(path, ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return nil, fmt.Errorf("open gzip reader: %w", err)
			}
			defer gz.Close()
			r = gz
		}
	}

	return ReadQueries(r)
}

// ReadQueries parses augmented FASTA content from r.
func ReadQueries(r io.Reader) ([]*Record, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var (
		records []*Record
		current *Record
		seqBuf  strings.Builder
		lineNum int
	)

	flush := func() {
		if current != nil {
			current.Sequence = seqBuf.String()
			records = append(records, current)
		}
		seqBuf.Reset()
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.HasPrefix(line, ">"):
			flush()
			current = &Record{Name: parseName(line)}
		case line == "":
			continue
		case current == nil:
			return nil, fmt.Errorf("line %d: sequence data before first header", lineNum)
		case strings.HasSuffix(line, mateSuffix):
			current.Mates = append(current.Mates, strings.TrimSuffix(line, mateSuffix))
		case strings.HasSuffix(line, "#"):
			kmer, err := parseIKmer(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.IKmers = append(current.IKmers, kmer)
		default:
			seqBuf.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan query file: %w", err)
	}
	return records, nil
}

// parseName extracts the record name, the header up to the first whitespace.
func parseName(header string) string {
	header = strings.TrimPrefix(header, ">")
	if fields := strings.Fields(header); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// parseIKmer parses an interesting k-mer annotation line.
func parseIKmer(line string) (IKmer, error) {
	body := strings.TrimSuffix(line, "#")
	offset := len(body) - len(strings.TrimLeft(body, " "))

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return IKmer{}, fmt.Errorf("empty k-mer annotation")
	}

	kmer := IKmer{Sequence: fields[0], Offset: offset}
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return IKmer{}, fmt.Errorf("invalid k-mer abundance %q", f)
		}
		kmer.Counts = append(kmer.Counts, n)
	}
	return kmer, nil
}
