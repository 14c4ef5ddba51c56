package splitter

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
)

const chunkExt = ".flac"

// Split cuts audioPath into chunks inside chunksDir. Every produced chunk is
// checked against opts.MaxBytes; the first oversized chunk aborts with
// *domain.ChunkSizeExceededError and is left on disk.
func (s *implSplitter) Split(ctx context.Context, audioPath, chunksDir string, opts Options) ([]domain.Chunk, error) {
	probe, err := s.Probe(ctx, audioPath)
	if err != nil {
		return nil, &domain.SplitError{Err: err}
	}

	segments, err := Plan(probe, opts.MaxBytes, opts.Margin)
	if err != nil {
		return nil, &domain.SplitError{Err: err}
	}

	if s.resume {
		chunks, err := s.existingChunks(ctx, chunksDir, opts.MaxBytes)
		switch {
		case err != nil:
			s.logger.Warn(ctx, "Ignoring existing chunks: %v", err)
		case len(chunks) == 0:
		case !covers(chunks, probe.Duration, len(segments)):
			s.logger.Warn(ctx, "Ignoring %d existing chunk(s): they cover %.1fs of %.1fs",
				len(chunks), chunks[len(chunks)-1].End(), probe.Duration)
		default:
			s.logger.Info(ctx, "Chunks already exist: %d files", len(chunks))
			return chunks, nil
		}
	}

	if err := s.Clean(chunksDir); err != nil {
		return nil, &domain.SplitError{Err: err}
	}

	s.logger.Info(ctx, "Splitting %s (%.1fs, %.2f MB) into %d chunk(s), cap %.2f MB",
		filepath.Base(audioPath), probe.Duration, toMB(probe.Size), len(segments), toMB(opts.MaxBytes))

	if len(segments) == 1 {
		return s.copySingle(ctx, audioPath, chunksDir, probe, opts.MaxBytes)
	}

	chunks := make([]domain.Chunk, 0, len(segments))
	for i, seg := range segments {
		seq := i + 1
		out := chunkPath(chunksDir, seq)

		if err := s.extract(ctx, audioPath, out, seg); err != nil {
			return nil, &domain.SplitError{Seq: seq, Err: err}
		}

		info, err := os.Stat(out)
		if err != nil {
			return nil, &domain.SplitError{Seq: seq, Err: fmt.Errorf("stat chunk: %w", err)}
		}
		if info.Size() > opts.MaxBytes {
			return nil, &domain.ChunkSizeExceededError{Seq: seq, Path: out, Size: info.Size(), Limit: opts.MaxBytes}
		}

		chunk := domain.Chunk{
			Seq:      seq,
			Path:     out,
			Start:    seg.Start,
			Duration: seg.Duration,
			Size:     info.Size(),
		}
		s.logger.Info(ctx, "Created %s (%.2f MB)", chunk, toMB(chunk.Size))
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// extract re-encodes one window of the source. Seeking after -i keeps the
// cut sample-accurate against the source timeline.
func (s *implSplitter) extract(ctx context.Context, src, dst string, seg Segment) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-ss", formatSeconds(seg.Start),
		"-t", formatSeconds(seg.Duration),
		"-map", "0:a",
		"-ar", strconv.Itoa(s.sampleRate),
		"-ac", "1",
		"-c:a", "flac",
		"-y",
		dst,
	}

	if _, err := s.executor.Execute(ctx, s.ffmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg extract chunk: %w", err)
	}
	return nil
}

// copySingle stores an under-cap source as the only chunk, byte for byte.
func (s *implSplitter) copySingle(ctx context.Context, src, chunksDir string, probe Probe, maxBytes int64) ([]domain.Chunk, error) {
	dst := chunkPath(chunksDir, 1)
	if err := copyFile(src, dst); err != nil {
		return nil, &domain.SplitError{Seq: 1, Err: err}
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, &domain.SplitError{Seq: 1, Err: fmt.Errorf("stat chunk: %w", err)}
	}
	if info.Size() > maxBytes {
		return nil, &domain.ChunkSizeExceededError{Seq: 1, Path: dst, Size: info.Size(), Limit: maxBytes}
	}

	s.logger.Info(ctx, "File is already under %.2f MB, stored as single chunk", toMB(maxBytes))
	return []domain.Chunk{{
		Seq:      1,
		Path:     dst,
		Start:    0,
		Duration: probe.Duration,
		Size:     info.Size(),
	}}, nil
}

// Clean removes chunk files from a previous attempt.
func (s *implSplitter) Clean(chunksDir string) error {
	paths, err := discoverChunks(chunksDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("remove chunk %s: %w", p, err)
		}
	}
	return nil
}

// existingChunks rebuilds the chunk list from files left by an earlier run.
// Any gap in numbering or oversized file invalidates the whole set.
func (s *implSplitter) existingChunks(ctx context.Context, chunksDir string, maxBytes int64) ([]domain.Chunk, error) {
	paths, err := discoverChunks(chunksDir)
	if err != nil || len(paths) == 0 {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(paths))
	var start float64
	for i, p := range paths {
		seq := i + 1
		if p != chunkPath(chunksDir, seq) {
			return nil, fmt.Errorf("unexpected chunk %s at position %d", filepath.Base(p), seq)
		}
		probe, err := s.Probe(ctx, p)
		if err != nil {
			return nil, err
		}
		if probe.Size > maxBytes {
			return nil, fmt.Errorf("chunk %s is over the cap", filepath.Base(p))
		}
		chunks = append(chunks, domain.Chunk{Seq: seq, Path: p, Start: start, Duration: probe.Duration, Size: probe.Size})
		start += probe.Duration
	}
	return chunks, nil
}

// covers reports whether chunks left by an earlier run span the whole source.
// A re-split run leaves more chunks than the plan, never fewer.
func covers(chunks []domain.Chunk, duration float64, planned int) bool {
	if len(chunks) < planned {
		return false
	}
	tolerance := math.Max(0.5, duration*1e-3)
	return math.Abs(chunks[len(chunks)-1].End()-duration) <= tolerance
}

func discoverChunks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read chunks dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "chunk_") || filepath.Ext(e.Name()) != chunkExt {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)
	return files, nil
}

func chunkPath(dir string, seq int) string {
	return filepath.Join(dir, video.ChunkName(seq)+chunkExt)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy audio: %w", err)
	}
	return out.Close()
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 6, 64)
}

func toMB(b int64) float64 {
	return float64(b) / (1024 * 1024)
}
