package splitter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Probe describes a source audio file.
type Probe struct {
	Duration float64 // seconds
	Size     int64   // bytes on disk
	BitRate  int64   // bits per second as reported by ffprobe, 0 if unknown
}

// BytesPerSecond is the average on-disk rate of the file.
func (p Probe) BytesPerSecond() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return float64(p.Size) / p.Duration
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
}

// Probe reads duration and bitrate with ffprobe and size from the filesystem.
func (s *implSplitter) Probe(ctx context.Context, path string) (Probe, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Probe{}, fmt.Errorf("stat audio: %w", err)
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	}

	out, err := s.executor.Execute(ctx, s.ffprobe, args...)
	if err != nil {
		return Probe{}, fmt.Errorf("ffprobe: %w", err)
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return Probe{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return Probe{}, fmt.Errorf("parse duration %q: %w", parsed.Format.Duration, err)
	}

	p := Probe{Duration: duration, Size: info.Size()}
	if parsed.Format.BitRate != "" {
		if br, err := strconv.ParseInt(parsed.Format.BitRate, 10, 64); err == nil {
			p.BitRate = br
		}
	}

	return p, nil
}
