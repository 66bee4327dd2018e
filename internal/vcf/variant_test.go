package vcf

import (
	"strconv"
	"strings"
	"testing"
)

func TestVariant_IsSNV(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		alt  string
		want bool
	}{
		{"A to G", "A", "G", true},
		{"same base", "A", "A", false},
		{"deletion", "AT", "A", false},
		{"insertion", "A", "AT", false},
		{"MNV", "AT", "GC", false},
		{"no-call", ".", ".", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New("chr1", 10, tt.ref, tt.alt, Info{})
			if got := v.IsSNV(); got != tt.want {
				t.Errorf("IsSNV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVariant_IndelKinds(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		alt       string
		indel     bool
		insertion bool
		deletion  bool
	}{
		{"SNV", "A", "G", false, false, false},
		{"deletion", "ATG", "A", true, false, true},
		{"insertion", "A", "ATTT", true, true, false},
		{"no-call", ".", ".", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New("chr1", 10, tt.ref, tt.alt, Info{})
			if got := v.IsIndel(); got != tt.indel {
				t.Errorf("IsIndel() = %v, want %v", got, tt.indel)
			}
			if got := v.IsInsertion(); got != tt.insertion {
				t.Errorf("IsInsertion() = %v, want %v", got, tt.insertion)
			}
			if got := v.IsDeletion(); got != tt.deletion {
				t.Errorf("IsDeletion() = %v, want %v", got, tt.deletion)
			}
		})
	}
}

func TestVariant_NoCall(t *testing.T) {
	v := NewNoCall("chr2", 99, ReasonPerfectMatch, Info{QN: "contig1", QS: "ACGT"})
	if !v.IsNoCall() {
		t.Fatal("expected no-call")
	}
	if v.Info.NC != ReasonPerfectMatch {
		t.Errorf("NC = %q, want %q", v.Info.NC, ReasonPerfectMatch)
	}

	want := "chr2\t100\t.\t.\t.\t.\t.\tNC=perfectmatch;QN=contig1;QS=ACGT"
	if got := v.VCF(); got != want {
		t.Errorf("VCF() = %q, want %q", got, want)
	}
}

func TestVariant_VCF(t *testing.T) {
	tests := []struct {
		name string
		v    *Variant
		want string
	}{
		{
			name: "no attributes",
			v:    New("chr1", 0, "A", "G", Info{}),
			want: "chr1\t1\t.\tA\tG\t.\tPASS\t.",
		},
		{
			name: "QS sorted last",
			v: New("chr1", 41, "A", "G", Info{
				QS: "ACGTT", VW: "CGTT", RW: "CATT", IK: "7", QN: "c1",
			}),
			want: "chr1\t42\t.\tA\tG\t.\tPASS\tIK=7;QN=c1;RW=CATT;VW=CGTT;QS=ACGTT",
		},
		{
			name: "semicolons rewritten",
			v:    New("chr3", 9, "T", "C", Info{Extra: map[string]string{"XX": "a;b"}, GT: "0/1,0/0"}),
			want: "chr3\t10\t.\tT\tC\t.\tPASS\tGT=0/1,0/0;XX=a:b",
		},
		{
			name: "extra keys interleave alphabetically",
			v:    New("chr3", 9, "T", "C", Info{Extra: map[string]string{"AA": "1", "ZZ": "2"}, NC: "matefail", QS: "TT"}),
			want: "chr3\t10\t.\tT\tC\t.\tPASS\tAA=1;NC=matefail;ZZ=2;QS=TT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.VCF(); got != tt.want {
				t.Errorf("VCF() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariant_PositionRoundTrip(t *testing.T) {
	for _, p := range []int64{0, 1, 1049, 25245350} {
		v := New("chr1", p, "A", "C", Info{})
		fields := strings.Split(v.VCF(), "\t")
		if want := strconv.FormatInt(p+1, 10); fields[1] != want {
			t.Errorf("position %d serialized as %s, want %s", p, fields[1], want)
		}
		if v.Position() != p {
			t.Errorf("Position() = %d, want %d", v.Position(), p)
		}
	}
}

func TestVariant_VCFIdempotent(t *testing.T) {
	v := New("chr1", 5, "A", "C", Info{
		VW: "AAC", RW: "AAA", IK: "3", QN: "q", QS: "AACG", GT: "0/1",
		Extra: map[string]string{"K1": "x", "K2": "y", "K3": "z"},
	})
	first := v.VCF()
	for i := 0; i < 10; i++ {
		if got := v.VCF(); got != first {
			t.Fatalf("VCF() changed between calls: %q vs %q", got, first)
		}
	}
}

func TestVariant_SetNoCallKeepsAlleles(t *testing.T) {
	v := New("chr1", 5, "A", "C", Info{IK: "2"})
	v.SetNoCall(ReasonMateFail)

	if v.IsNoCall() {
		t.Error("matefail call should keep its alleles")
	}
	want := "chr1\t6\t.\tA\tC\t.\tPASS\tIK=2;NC=matefail"
	if got := v.VCF(); got != want {
		t.Errorf("VCF() = %q, want %q", got, want)
	}
}

func TestVariant_String(t *testing.T) {
	tests := []struct {
		name string
		v    *Variant
		want string
	}{
		{"SNV", New("chr1", 41, "A", "G", Info{}), "chr1:41:A->G"},
		{"deletion", New("chr1", 41, "ATTT", "A", Info{}), "chr1:42:3D"},
		{"insertion", New("chr1", 41, "A", "AGG", Info{}), "chr1:42:I->GG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariant_Accessors(t *testing.T) {
	v := New("chr1", 5, "A", "C", Info{VW: "GAC", RW: "GAA", CG: "5D3M", GT: "0/1,1/1,0/0", IK: "12"})

	if v.Window() != "GAC" || v.RefWindow() != "GAA" || v.Cigar() != "5D3M" {
		t.Errorf("unexpected accessors: %q %q %q", v.Window(), v.RefWindow(), v.Cigar())
	}
	gt := v.Genotypes()
	if len(gt) != 3 || gt[1] != "1/1" {
		t.Errorf("Genotypes() = %v", gt)
	}
	if v.SupportingKmers() != 12 {
		t.Errorf("SupportingKmers() = %d, want 12", v.SupportingKmers())
	}

	empty := New("chr1", 5, "A", "C", Info{})
	if empty.Genotypes() != nil {
		t.Errorf("Genotypes() = %v, want nil", empty.Genotypes())
	}
}
