package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
	"github.com/nguyentantai21042004/tubedigest/pkg/fsutil"
)

// ManifestFile records the chunk boundaries that the transcripts and
// summaries on disk were produced from. It lives in the transcripts directory.
const ManifestFile = "chunks.json"

const boundaryTolerance = 1e-3

type chunkManifest struct {
	Chunks []manifestChunk `json:"chunks"`
}

type manifestChunk struct {
	Seq      int     `json:"seq"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

func newManifest(chunks []domain.Chunk) chunkManifest {
	m := chunkManifest{Chunks: make([]manifestChunk, len(chunks))}
	for i, c := range chunks {
		m.Chunks[i] = manifestChunk{Seq: c.Seq, Start: c.Start, Duration: c.Duration}
	}
	return m
}

func (m chunkManifest) matches(other chunkManifest) bool {
	if len(m.Chunks) != len(other.Chunks) {
		return false
	}
	for i, a := range m.Chunks {
		b := other.Chunks[i]
		if a.Seq != b.Seq ||
			math.Abs(a.Start-b.Start) > boundaryTolerance ||
			math.Abs(a.Duration-b.Duration) > boundaryTolerance {
			return false
		}
	}
	return true
}

// syncManifest compares chunks with the boundaries recorded by the previous
// run. On any difference every derived artifact is removed, since
// transcripts and summaries are keyed by Seq alone.
func (p *implProcessor) syncManifest(ctx context.Context, layout video.Layout, chunks []domain.Chunk) error {
	path := filepath.Join(layout.Transcripts, ManifestFile)
	current := newManifest(chunks)

	prev, err := readManifest(path)
	switch {
	case err == nil && prev.matches(current):
		return nil
	case err == nil:
		p.logger.Warn(ctx, "Chunk boundaries changed since the last run; discarding old transcripts and analysis")
	case !os.IsNotExist(err):
		p.logger.Warn(ctx, "Unreadable chunk manifest, discarding old transcripts and analysis: %v", err)
	}

	for _, dir := range []string{layout.Transcripts, layout.Analysis} {
		if err := removeFiles(dir); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chunk manifest: %w", err)
	}
	if err := fsutil.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("write chunk manifest: %w", err)
	}
	return nil
}

func readManifest(path string) (chunkManifest, error) {
	var m chunkManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// removeFiles deletes the regular files directly inside dir.
func removeFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove stale artifact: %w", err)
		}
	}
	return nil
}
