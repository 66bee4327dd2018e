package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inodb/vibe-call/internal/vcf"
)

func TestVCFWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	w := NewVCFWriter(&buf, []string{"##reference=GRCh38"})
	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if lines[0] != "##fileformat=VCFv4.2" {
		t.Errorf("first line = %q, want ##fileformat=VCFv4.2", lines[0])
	}
	if lines[1] != "##source=vibe-call" {
		t.Errorf("second line = %q, want ##source=vibe-call", lines[1])
	}
	if lines[2] != "##reference=GRCh38" {
		t.Errorf("third line = %q, want ##reference=GRCh38", lines[2])
	}
	last := lines[len(lines)-1]
	if last != "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO" {
		t.Errorf("last line = %q, want #CHROM column line", last)
	}

	for _, id := range []string{"NC", "QN", "QS", "VW", "RW", "IK", "CG", "GT"} {
		want := "##INFO=<ID=" + id + ","
		found := false
		for _, line := range lines {
			if strings.HasPrefix(line, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing INFO definition for %s", id)
		}
	}

	ik := `##INFO=<ID=IK,Number=1,Type=Integer,Description="Number of interesting k-mers supporting the call">`
	if !strings.Contains(buf.String(), ik+"\n") {
		t.Errorf("IK definition not formatted as %q", ik)
	}
}

func TestVCFWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewVCFWriter(&buf, nil)

	calls := []*vcf.Variant{
		vcf.New("chr1", 108, "A", "T", vcf.Info{VW: "TGCTTAA", RW: "TGCATAA", IK: "2"}),
		vcf.NewNoCall("chr1", 103, vcf.ReasonPerfectMatch, vcf.Info{QN: "contig1", QS: "GCAT;GC"}),
	}
	for _, v := range calls {
		if err := w.Write(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "chr1\t109\t.\tA\tT\t.\tPASS\tIK=2;RW=TGCATAA;VW=TGCTTAA\n" +
		"chr1\t104\t.\t.\t.\t.\t.\tNC=perfectmatch;QN=contig1;QS=GCAT:GC\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestWriter_Interface(t *testing.T) {
	var buf bytes.Buffer
	for _, w := range []Writer{NewVCFWriter(&buf, nil), NewTabWriter(&buf)} {
		if err := w.WriteHeader(); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
	}
}
