package cost

import "sync"

type implTracker struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty Tracker.
func New() Tracker {
	return &implTracker{}
}
