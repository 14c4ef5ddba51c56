package acquirer

import (
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/pkg/executor"
)

type implAcquirer struct {
	executor   executor.Executor
	logger     logger.Logger
	binary     string
	sampleRate int
	resume     bool
}

// Options configures the downloader invocation.
type Options struct {
	Binary     string
	SampleRate int
	Resume     bool
}

// New creates an Acquirer backed by yt-dlp.
func New(exec executor.Executor, log logger.Logger, opts Options) Acquirer {
	if opts.Binary == "" {
		opts.Binary = "yt-dlp"
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 16000
	}
	return &implAcquirer{
		executor:   exec,
		logger:     log,
		binary:     opts.Binary,
		sampleRate: opts.SampleRate,
		resume:     opts.Resume,
	}
}
