package splitter

import (
	"context"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

// Splitter cuts a long audio file into ordered, size-bounded chunks.
type Splitter interface {
	Probe(ctx context.Context, path string) (Probe, error)
	Split(ctx context.Context, audioPath, chunksDir string, opts Options) ([]domain.Chunk, error)
	Clean(chunksDir string) error
}

// Options bounds chunk size. Margin is the fraction of MaxBytes targeted
// when estimating chunk durations.
type Options struct {
	MaxBytes int64
	Margin   float64
}
