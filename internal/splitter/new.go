package splitter

import (
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/pkg/executor"
)

type implSplitter struct {
	executor   executor.Executor
	logger     logger.Logger
	ffmpeg     string
	ffprobe    string
	sampleRate int
	resume     bool
}

// Config names the codec binaries and output format.
type Config struct {
	FFmpeg     string
	FFprobe    string
	SampleRate int
	Resume     bool
}

// New creates a Splitter backed by ffprobe and ffmpeg.
func New(exec executor.Executor, log logger.Logger, cfg Config) Splitter {
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = "ffmpeg"
	}
	if cfg.FFprobe == "" {
		cfg.FFprobe = "ffprobe"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &implSplitter{
		executor:   exec,
		logger:     log,
		ffmpeg:     cfg.FFmpeg,
		ffprobe:    cfg.FFprobe,
		sampleRate: cfg.SampleRate,
		resume:     cfg.Resume,
	}
}
