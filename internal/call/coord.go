// Package call turns alignments of assembled contigs against reference
// targets into variant calls and no-calls.
package call

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrSubseqID is returned when a target name does not follow the
// <seqid>_<start>-<end> convention. It indicates broken upstream input and
// aborts calling.
var ErrSubseqID = errors.New("unable to parse subsequence id")

var subseqPattern = regexp.MustCompile(`(\S+)_(\d+)-(\d+)`)

// LocalToGlobal converts a coordinate local to a target subsequence into a
// global genome coordinate. The subsequence id encodes the global origin as
// <seqid>_<start>-<end>, e.g. chr1_1000-2000.
func LocalToGlobal(local int, subseqID string) (string, int64, error) {
	m := subseqPattern.FindStringSubmatch(subseqID)
	if m == nil {
		return "", 0, fmt.Errorf("%w %q", ErrSubseqID, subseqID)
	}
	start, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w %q: %v", ErrSubseqID, subseqID, err)
	}
	return m[1], start + int64(local), nil
}
