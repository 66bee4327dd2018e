// Package mates places the mate reads of interesting reads on a reference
// genome with bwa mem, providing the evidence used to break ties between
// equally good contig alignments.
package mates

import (
	"errors"
	"os/exec"

	"github.com/biogo/external"
)

var ErrMissingRequired = errors.New("bwa: missing required argument")

// MEM defines parameters for bwa mem.
type MEM struct {
	// Usage: bwa mem [options] <idxbase> <in1.fq>
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}bwa{{end}}{{split}}mem"` // bwa mem

	Threads       int  `buildarg:"{{if .}}-t{{split}}{{.}}{{end}}"` // -t: number of threads
	MinSeedLength int  `buildarg:"{{if .}}-k{{split}}{{.}}{{end}}"` // -k: minimum seed length
	Primary       bool `buildarg:"{{if .}}-M{{end}}"`               // -M: mark shorter split hits as secondary
	Quiet         bool `buildarg:"{{if .}}-v{{split}}1{{end}}"`     // -v: verbosity level

	Reference string `buildarg:"{{.}}"` // "ref.fa", indexed with bwa index
	Reads     string `buildarg:"{{.}}"` // "mates.fq"
}

// BuildCommand returns an exec.Cmd built from the parameters in m.
func (m MEM) BuildCommand() (*exec.Cmd, error) {
	args, err := m.args()
	if err != nil {
		return nil, err
	}
	return exec.Command(args[0], args[1:]...), nil
}

func (m MEM) args() ([]string, error) {
	if m.Reference == "" || m.Reads == "" {
		return nil, ErrMissingRequired
	}
	return external.Build(m)
}
