package mates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/biogo/hts/sam"
	"go.uber.org/zap"

	"github.com/inodb/vibe-call/internal/call"
)

// BWAPlacer places mate reads by running bwa mem against an indexed
// reference and reading the SAM records it writes to stdout.
type BWAPlacer struct {
	mem    MEM
	logger *zap.Logger
}

// NewBWAPlacer creates a placer running the given bwa binary ("" for bwa on
// PATH) with the given number of threads (0 for the bwa default).
func NewBWAPlacer(bwa string, threads int) *BWAPlacer {
	return &BWAPlacer{
		mem:    MEM{Cmd: bwa, Threads: threads, Quiet: true},
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (p *BWAPlacer) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Place aligns the reads in readsFile to refFile and returns the position of
// every mapped record.
func (p *BWAPlacer) Place(ctx context.Context, readsFile, refFile string) ([]call.MatePosition, error) {
	m := p.mem
	m.Reads = readsFile
	m.Reference = refFile
	args, err := m.args()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("bwa stdout: %w", err)
	}

	p.logger.Debug("running bwa", zap.String("command", strings.Join(args, " ")))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start bwa: %w", err)
	}

	positions, readErr := ReadPositions(stdout)
	if readErr != nil {
		// Drain so bwa is not blocked writing to a closed pipe.
		io.Copy(io.Discard, stdout)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return nil, fmt.Errorf("bwa mem: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("bwa mem: %w", err)
	}
	if readErr != nil {
		return nil, readErr
	}

	p.logger.Info("placed mate reads",
		zap.String("reads", readsFile),
		zap.Int("mapped", len(positions)))
	return positions, nil
}

// ReadPositions reads SAM records from r and returns the 0-based position of
// each mapped record. Unmapped records are skipped.
func ReadPositions(r io.Reader) ([]call.MatePosition, error) {
	sr, err := sam.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read SAM header: %w", err)
	}

	var positions []call.MatePosition
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			return positions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read SAM record: %w", err)
		}
		if rec.Ref == nil || rec.Flags&sam.Unmapped != 0 {
			continue
		}
		positions = append(positions, call.MatePosition{
			Seqid: rec.Ref.Name(),
			Pos:   int64(rec.Pos),
		})
	}
}
