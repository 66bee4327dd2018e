package mates

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vibe-call/internal/call"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Cache stores mate placements on disk next to the reads file so repeated
// runs over the same inputs skip bwa:
//
//	{reads}.mates.gob       (serialized placements)
//	{reads}.mates.gob.meta  (reads and reference fingerprints)
//
// Cache wraps another placer and is itself a call.MatePlacer.
type Cache struct {
	placer call.MatePlacer
	logger *zap.Logger
}

// NewCache creates a disk cache in front of placer.
func NewCache(placer call.MatePlacer) *Cache {
	return &Cache{placer: placer, logger: zap.NewNop()}
}

// SetLogger sets the logger for cache hits and write failures.
func (c *Cache) SetLogger(l *zap.Logger) {
	c.logger = l
}

type cacheData struct {
	Positions []call.MatePosition
}

func gobPath(readsFile string) string {
	return readsFile + ".mates.gob"
}

func metaPath(readsFile string) string {
	return gobPath(readsFile) + ".meta"
}

// Place returns cached placements when the cache matches the current reads
// and reference files, otherwise it runs the wrapped placer and stores the
// result. A failure to write the cache is logged, not returned.
func (c *Cache) Place(ctx context.Context, readsFile, refFile string) ([]call.MatePosition, error) {
	reads, err := StatFile(readsFile)
	if err != nil {
		return nil, fmt.Errorf("stat mate reads: %w", err)
	}
	ref, err := StatFile(refFile)
	if err != nil {
		return nil, fmt.Errorf("stat reference: %w", err)
	}

	if Valid(readsFile, reads, ref) {
		positions, err := Load(readsFile)
		if err == nil {
			c.logger.Info("using cached mate placements",
				zap.String("path", gobPath(readsFile)),
				zap.Int("mapped", len(positions)))
			return positions, nil
		}
		c.logger.Warn("ignoring unreadable mate cache", zap.Error(err))
	}

	positions, err := c.placer.Place(ctx, readsFile, refFile)
	if err != nil {
		return nil, err
	}
	if err := Write(readsFile, positions, reads, ref); err != nil {
		c.logger.Warn("failed to write mate cache", zap.Error(err))
	}
	return positions, nil
}

// Valid checks whether the cached placements for readsFile were computed
// from the given reads and reference files.
func Valid(readsFile string, reads, ref FileFingerprint) bool {
	meta, err := readMeta(readsFile)
	if err != nil {
		return false
	}

	checks := []struct{ key, val string }{
		{"reads_size", strconv.FormatInt(reads.Size, 10)},
		{"reads_modtime", reads.ModTime.UTC().Format(time.RFC3339Nano)},
		{"reference_path", ref.Path},
		{"reference_size", strconv.FormatInt(ref.Size, 10)},
		{"reference_modtime", ref.ModTime.UTC().Format(time.RFC3339Nano)},
	}

	for _, c := range checks {
		if meta[c.key] != c.val {
			return false
		}
	}

	if _, err := os.Stat(gobPath(readsFile)); err != nil {
		return false
	}
	return true
}

// Load reads cached placements for readsFile.
func Load(readsFile string) ([]call.MatePosition, error) {
	f, err := os.Open(gobPath(readsFile))
	if err != nil {
		return nil, fmt.Errorf("open mate cache: %w", err)
	}
	defer f.Close()

	var data cacheData
	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode mate cache: %w", err)
	}
	return data.Positions, nil
}

// Write stores placements for readsFile along with the fingerprints they
// were computed from.
func Write(readsFile string, positions []call.MatePosition, reads, ref FileFingerprint) error {
	path := gobPath(readsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mate cache: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(cacheData{Positions: positions}); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode mate cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mate cache: %w", err)
	}

	return writeMeta(readsFile, reads, ref)
}

// Clear removes the cached placement files for readsFile.
func Clear(readsFile string) {
	os.Remove(gobPath(readsFile))
	os.Remove(metaPath(readsFile))
}

func writeMeta(readsFile string, reads, ref FileFingerprint) error {
	lines := []string{
		"reads_size=" + strconv.FormatInt(reads.Size, 10),
		"reads_modtime=" + reads.ModTime.UTC().Format(time.RFC3339Nano),
		"reference_path=" + ref.Path,
		"reference_size=" + strconv.FormatInt(ref.Size, 10),
		"reference_modtime=" + ref.ModTime.UTC().Format(time.RFC3339Nano),
		"created_at=" + time.Now().UTC().Format(time.RFC3339),
		"",
	}
	return os.WriteFile(metaPath(readsFile), []byte(strings.Join(lines, "\n")), 0644)
}

func readMeta(readsFile string) (map[string]string, error) {
	data, err := os.ReadFile(metaPath(readsFile))
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return meta, nil
}
