package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

// Options selects which files trigger the handler.
type Options struct {
	// Extensions are matched case-insensitively, with the leading dot.
	Extensions []string
	// Settle is waited after an event so editors can finish writing.
	Settle time.Duration
	// MaxConcurrent bounds handlers running at once. Defaults to 1.
	MaxConcurrent int
}

// New creates a Watcher on dir.
func New(dir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &implWatcher{
		dir:           dir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		extensions:    exts,
		settle:        opts.Settle,
		maxConcurrent: opts.MaxConcurrent,
		semaphore:     make(chan struct{}, opts.MaxConcurrent),
	}, nil
}
