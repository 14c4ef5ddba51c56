package splitter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/pkg/executor/executortest"
)

const mb = 1024 * 1024

func TestPlan(t *testing.T) {
	tests := []struct {
		name      string
		probe     Probe
		maxBytes  int64
		margin    float64
		wantCount int
	}{
		{"under cap", Probe{Duration: 600, Size: 10 * mb}, 18 * mb, 0.9, 1},
		{"exactly cap", Probe{Duration: 600, Size: 18 * mb}, 18 * mb, 0.9, 1},
		{"forty megabytes", Probe{Duration: 4000, Size: 40 * mb}, 18 * mb, 0.9, 3},
		{"exact multiple of target", Probe{Duration: 3000, Size: 30 * mb}, 10 * mb, 1, 3},
		{"just over cap", Probe{Duration: 100, Size: 18*mb + 1}, 18 * mb, 0.9, 2},
		{"long lecture", Probe{Duration: 3 * 3600, Size: 350 * mb}, 18 * mb, 0.9, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Plan(tt.probe, tt.maxBytes, tt.margin)
			require.NoError(t, err)
			require.Len(t, segs, tt.wantCount)

			assert.Equal(t, 0.0, segs[0].Start)
			var total float64
			for i, s := range segs {
				assert.Greater(t, s.Duration, 0.0, "segment %d", i)
				if i > 0 {
					prev := segs[i-1]
					assert.InDelta(t, prev.Start+prev.Duration, s.Start, 1e-9, "gap before segment %d", i)
				}
				estimated := s.Duration * tt.probe.BytesPerSecond()
				assert.LessOrEqual(t, estimated, float64(tt.maxBytes)+1e-6, "segment %d estimate", i)
				total += s.Duration
			}
			assert.InDelta(t, tt.probe.Duration, total, 1e-6)
		})
	}
}

func TestPlanRemainderIsLast(t *testing.T) {
	segs, err := Plan(Probe{Duration: 4000, Size: 40 * mb}, 18*mb, 0.9)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.InDelta(t, 1620, segs[0].Duration, 1e-6)
	assert.InDelta(t, 1620, segs[1].Duration, 1e-6)
	assert.InDelta(t, 760, segs[2].Duration, 1e-6)
}

func TestPlanInvalid(t *testing.T) {
	tests := []struct {
		name     string
		probe    Probe
		maxBytes int64
		margin   float64
	}{
		{"zero duration", Probe{Size: 10}, 100, 0.9},
		{"zero size", Probe{Duration: 10}, 100, 0.9},
		{"zero cap", Probe{Duration: 10, Size: 10}, 0, 0.9},
		{"zero margin", Probe{Duration: 10, Size: 10}, 100, 0},
		{"too many chunks", Probe{Duration: 1e6, Size: 20000 * mb}, 18 * mb, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.probe, tt.maxBytes, tt.margin)
			assert.Error(t, err)
		})
	}
}

func newTestSplitter(codec *executortest.Codec, resume bool) (Splitter, *executortest.Fake) {
	fake := codec.Fake()
	return New(fake, logger.Nop(), Config{Resume: resume}), fake
}

func TestSplitFortyMegabytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio", "audio.flac")
	chunksDir := filepath.Join(dir, "chunks")
	require.NoError(t, os.MkdirAll(chunksDir, 0755))

	codec := executortest.NewCodec(40 * mb / 4000.0)
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))

	s, fake := newTestSplitter(codec, false)
	chunks, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	var total float64
	for i, c := range chunks {
		assert.Equal(t, i+1, c.Seq)
		assert.LessOrEqual(t, c.Size, int64(18*mb))
		assert.FileExists(t, c.Path)
		if i > 0 {
			assert.InDelta(t, chunks[i-1].End(), c.Start, 1e-9)
		}
		total += c.Duration
	}
	assert.InDelta(t, 4000, total, 1e-6)
	assert.Equal(t, filepath.Join(chunksDir, "chunk_001.flac"), chunks[0].Path)
	assert.Equal(t, 3, fake.Count("ffmpeg"))
}

func TestSplitUnderCapCopiesBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio.flac")
	content := []byte("fLaC\x00\x00\x00\x22 small source audio")
	require.NoError(t, os.WriteFile(src, content, 0644))

	fake := &executortest.Fake{
		Handle: func(ctx context.Context, name string, args ...string) (string, error) {
			return `{"format":{"duration":"12.5"}}`, nil
		},
	}
	s := New(fake, logger.Nop(), Config{})

	chunks, err := s.Split(context.Background(), src, dir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	got, err := os.ReadFile(chunks[0].Path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(content, got), "single chunk must be byte-identical to the source")
	assert.Equal(t, 12.5, chunks[0].Duration)
	assert.Equal(t, 0, fake.Count("ffmpeg"))
}

func TestSplitChunkSizeExceeded(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio.flac")

	// Re-encoding inflates the rate so the first chunk overshoots the cap.
	codec := executortest.NewCodec(2 * 40 * mb / 4000.0)
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))
	s, fake := newTestSplitter(codec, false)

	_, err := s.Split(context.Background(), src, dir, Options{MaxBytes: 18 * mb, Margin: 0.9})

	var sizeErr *domain.ChunkSizeExceededError
	require.True(t, errors.As(err, &sizeErr), "got %v", err)
	assert.Equal(t, 1, sizeErr.Seq)
	assert.Greater(t, sizeErr.Size, sizeErr.Limit)
	assert.FileExists(t, sizeErr.Path, "oversized chunk is left on disk")
	assert.Equal(t, 1, fake.Count("ffmpeg"), "split stops at the first oversized chunk")
}

func TestSplitCodecFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio.flac")

	codec := executortest.NewCodec(40 * mb / 4000.0)
	codec.FailOn = 2
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))
	s, _ := newTestSplitter(codec, false)

	_, err := s.Split(context.Background(), src, dir, Options{MaxBytes: 18 * mb, Margin: 0.9})

	var splitErr *domain.SplitError
	require.True(t, errors.As(err, &splitErr), "got %v", err)
	assert.Equal(t, 2, splitErr.Seq)
}

func TestSplitResumeReusesChunks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio", "audio.flac")
	chunksDir := filepath.Join(dir, "chunks")
	require.NoError(t, os.MkdirAll(chunksDir, 0755))

	codec := executortest.NewCodec(40 * mb / 4000.0)
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))
	s, fake := newTestSplitter(codec, true)

	first, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)

	second, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)

	assert.Equal(t, 3, fake.Count("ffmpeg"), "second split must reuse chunks")
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
		assert.InDelta(t, first[i].Start, second[i].Start, 1e-3)
	}
}

func TestSplitResumeAfterInterruptedSplit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio", "audio.flac")
	chunksDir := filepath.Join(dir, "chunks")
	require.NoError(t, os.MkdirAll(chunksDir, 0755))

	codec := executortest.NewCodec(40 * mb / 4000.0)
	codec.FailOn = 3
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))
	s, fake := newTestSplitter(codec, true)

	_, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(chunksDir, "chunk_002.flac"))

	codec.FailOn = 0
	chunks, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	var total float64
	for _, c := range chunks {
		total += c.Duration
	}
	assert.InDelta(t, 4000, total, 1e-3)
	assert.InDelta(t, 4000, chunks[2].End(), 1e-3)
	assert.Equal(t, 6, fake.Count("ffmpeg"), "partial set is discarded and every chunk re-cut")
}

func TestSplitResumeKeepsFinerResplit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio", "audio.flac")
	chunksDir := filepath.Join(dir, "chunks")
	require.NoError(t, os.MkdirAll(chunksDir, 0755))

	codec := executortest.NewCodec(40 * mb / 4000.0)
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))
	s, fake := newTestSplitter(codec, true)

	first, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.72})
	require.NoError(t, err)
	require.Len(t, first, 4)

	second, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)
	assert.Len(t, second, 4)
	assert.Equal(t, 4, fake.Count("ffmpeg"))
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"chunk_001.flac", "chunk_002.flac", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	s := New(&executortest.Fake{}, logger.Nop(), Config{})
	require.NoError(t, s.Clean(dir))

	assert.NoFileExists(t, filepath.Join(dir, "chunk_001.flac"))
	assert.NoFileExists(t, filepath.Join(dir, "chunk_002.flac"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSplitRemovesStaleChunks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "audio", "audio.flac")
	chunksDir := filepath.Join(dir, "chunks")
	require.NoError(t, os.MkdirAll(chunksDir, 0755))
	stale := filepath.Join(chunksDir, "chunk_009.flac")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	codec := executortest.NewCodec(40 * mb / 4000.0)
	require.NoError(t, codec.AddSource(src, 40*mb, 4000))
	s, _ := newTestSplitter(codec, false)

	chunks, err := s.Split(context.Background(), src, chunksDir, Options{MaxBytes: 18 * mb, Margin: 0.9})
	require.NoError(t, err)
	assert.Len(t, chunks, 3)
	assert.NoFileExists(t, stale)
}
