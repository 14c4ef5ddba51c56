package executortest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Codec simulates ffprobe and ffmpeg over sparse files. Durations of known
// files are tracked in memory; ffmpeg writes Duration*BytesPerSecond bytes.
type Codec struct {
	BytesPerSecond float64
	FFmpeg         string
	FFprobe        string
	// FailOn makes the n-th ffmpeg call (1-based) fail.
	FailOn int

	mu        sync.Mutex
	durations map[string]float64
	ffmpegN   int
}

// NewCodec returns a Codec whose ffmpeg output runs at bytesPerSecond.
func NewCodec(bytesPerSecond float64) *Codec {
	return &Codec{
		BytesPerSecond: bytesPerSecond,
		FFmpeg:         "ffmpeg",
		FFprobe:        "ffprobe",
		durations:      map[string]float64{},
	}
}

// AddSource creates a sparse file of size bytes that probes as duration seconds.
func (c *Codec) AddSource(path string, size int64, duration float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	c.mu.Lock()
	c.durations[path] = duration
	c.mu.Unlock()
	return nil
}

// Handle implements the Fake.Handle signature.
func (c *Codec) Handle(ctx context.Context, name string, args ...string) (string, error) {
	switch name {
	case c.FFprobe:
		path := args[len(args)-1]
		c.mu.Lock()
		d, ok := c.durations[path]
		c.mu.Unlock()
		if !ok {
			return "", fmt.Errorf("ffprobe: %s: no such file", path)
		}
		return fmt.Sprintf(`{"format":{"duration":"%f","bit_rate":"128000"}}`, d), nil

	case c.FFmpeg:
		c.mu.Lock()
		c.ffmpegN++
		n := c.ffmpegN
		c.mu.Unlock()
		if c.FailOn > 0 && n == c.FailOn {
			return "", fmt.Errorf("command 'ffmpeg' failed: exit status 1")
		}

		d, err := strconv.ParseFloat(ArgValue(args, "-t"), 64)
		if err != nil {
			return "", fmt.Errorf("ffmpeg: bad -t: %w", err)
		}
		out := args[len(args)-1]
		return "", c.AddSource(out, int64(d*c.BytesPerSecond), d)
	}

	return "", fmt.Errorf("unexpected command %s", name)
}

// Fake wraps the codec in a recording executor.
func (c *Codec) Fake() *Fake {
	return &Fake{Handle: c.Handle}
}
