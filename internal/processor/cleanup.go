package processor

import (
	"context"
	"os"
	"path/filepath"
)

// removeChunks deletes chunk audio after a successful run. Failures are
// logged only; the job has already succeeded.
func (p *implProcessor) removeChunks(ctx context.Context, chunksDir string) {
	if err := p.deps.Splitter.Clean(chunksDir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup chunks in %s: %v", chunksDir, err)
		return
	}
	p.cleanupEmptyDir(ctx, chunksDir)
}

// cleanupEmptyDir removes dir if nothing else is left in it.
func (p *implProcessor) cleanupEmptyDir(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		p.logger.Warn(ctx, "Failed to remove %s: %v", filepath.Base(dir), err)
	} else {
		p.logger.Debug(ctx, "Cleaned up chunk directory: %s", dir)
	}
}
