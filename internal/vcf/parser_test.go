package vcf

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCalls = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
chr1	1051	.	A	G	.	PASS	IK=4;RW=AAA;VW=AGA
chr1	2001	.	.	.	.	.	CG=abc;NC=inscrutablecigar;QN=contig7;QS=ACGTACGT

chr2	301	.	ATT	A	.	PASS	IK=2;NC=matefail;RW=CATTG;VW=CAG
`

func TestParser_Calls(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(sampleCalls))
	defer p.Close()

	var calls []*Variant
	for {
		v, err := p.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if v == nil {
			break
		}
		calls = append(calls, v)
	}

	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(calls))
	}
	if len(p.Header()) != 2 {
		t.Errorf("expected 2 header lines, got %d", len(p.Header()))
	}

	snv := calls[0]
	if snv.Seqid != "chr1" || snv.Position() != 1050 || !snv.IsSNV() {
		t.Errorf("unexpected SNV %s", snv)
	}
	if snv.Info.IK != "4" || snv.Info.VW != "AGA" || snv.Info.RW != "AAA" {
		t.Errorf("unexpected SNV info %+v", snv.Info)
	}

	nc := calls[1]
	if !nc.IsNoCall() || nc.Info.NC != ReasonInscrutableCigar || nc.Cigar() != "abc" {
		t.Errorf("unexpected no-call %+v", nc)
	}

	del := calls[2]
	if !del.IsDeletion() || del.Info.NC != ReasonMateFail {
		t.Errorf("unexpected deletion %+v", del)
	}
}

func TestParser_RoundTrip(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(sampleCalls), "\n")
	p := NewParserFromReader(strings.NewReader(sampleCalls))

	var got []string
	for {
		v, err := p.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if v == nil {
			break
		}
		got = append(got, v.VCF())
	}

	want := []string{lines[2], lines[3], lines[5]}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParser_NoTrailingNewline(t *testing.T) {
	p := NewParserFromReader(strings.NewReader("chr1\t5\t.\tA\tC\t.\tPASS\t."))

	v, err := p.Next()
	if err != nil || v == nil {
		t.Fatalf("expected variant, got %v, %v", v, err)
	}
	v, err = p.Next()
	if err != nil || v != nil {
		t.Fatalf("expected end of input, got %v, %v", v, err)
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"too few columns", "chr1\t5\t.\tA\tC\n", "expected at least 8 columns, found 5"},
		{"bad position", "chr1\tx\t.\tA\tC\t.\tPASS\t.\n", "invalid position: x"},
		{"zero position", "chr1\t0\t.\tA\tC\t.\tPASS\t.\n", "invalid position: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParserFromReader(strings.NewReader(tt.input))
			_, err := p.Next()

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if perr.Line != 1 || perr.Message != tt.msg {
				t.Errorf("got %+v, want line 1 %q", perr, tt.msg)
			}
		})
	}
}

func TestParser_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.vcf.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sampleCalls)); err != nil {
		t.Fatal(err)
	}
	gz.Close()
	f.Close()

	p, err := NewParser(path)
	if err != nil {
		t.Fatalf("NewParser() error: %v", err)
	}
	defer p.Close()

	count := 0
	for {
		v, err := p.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if v == nil {
			break
		}
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 calls, got %d", count)
	}
}

func TestParseInfo(t *testing.T) {
	info := ParseInfo("GT=0/1,1/1;NC=perfectmatch;FLAG;ZZ=q")
	if info.GT != "0/1,1/1" || info.NC != ReasonPerfectMatch {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Extra["ZZ"] != "q" || len(info.Extra) != 1 {
		t.Errorf("unexpected extra %v", info.Extra)
	}

	if empty := ParseInfo("."); empty.Extra != nil || empty.NC != "" {
		t.Errorf("expected empty info, got %+v", empty)
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Line: 42, Message: "expected at least 8 columns, found 7"}

	expected := "vcf parse error at line 42: expected at least 8 columns, found 7"
	if err.Error() != expected {
		t.Errorf("Error message mismatch: got %q, want %q", err.Error(), expected)
	}
}
