package processor

import (
	"fmt"
	"sync"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

// StageTiming is the wall-clock span of one lifecycle stage.
type StageTiming struct {
	Stage    domain.Stage  `json:"stage"`
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished"`
	Duration time.Duration `json:"duration_ns"`
	Seconds  float64       `json:"seconds"`
}

// jobState tracks the current stage of one job and the time spent in each.
type jobState struct {
	mu      sync.Mutex
	current domain.Stage
	timings []StageTiming
	now     func() time.Time
}

func newJobState() *jobState {
	return &jobState{current: domain.StageCreated, now: time.Now}
}

func (s *jobState) Current() domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Transition validates and applies a state change. Entering a working stage
// opens a timing; leaving it closes the timing.
func (s *jobState) Transition(to domain.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !isValidTransition(s.current, to) {
		return fmt.Errorf("invalid transition: %s -> %s", s.current, to)
	}

	now := s.now()
	s.closeLocked(now)
	s.current = to
	if !to.Terminal() {
		s.timings = append(s.timings, StageTiming{Stage: to, Started: now})
	}
	return nil
}

// Timings returns a copy of all stage timings. A stage still in progress
// is reported up to now.
func (s *jobState) Timings() []StageTiming {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]StageTiming(nil), s.timings...)
	if n := len(out); n > 0 && out[n-1].Finished.IsZero() {
		out[n-1] = finish(out[n-1], s.now())
	}
	return out
}

func (s *jobState) closeLocked(now time.Time) {
	if n := len(s.timings); n > 0 && s.timings[n-1].Finished.IsZero() {
		s.timings[n-1] = finish(s.timings[n-1], now)
	}
}

func finish(t StageTiming, now time.Time) StageTiming {
	t.Finished = now
	t.Duration = now.Sub(t.Started)
	t.Seconds = t.Duration.Seconds()
	return t
}

// isValidTransition enforces the allowed lifecycle edges: strictly forward
// through the stages, or to Failed from any non-terminal stage.
func isValidTransition(from, to domain.Stage) bool {
	if to == domain.StageFailed {
		return !from.Terminal()
	}
	switch from {
	case domain.StageCreated:
		return to == domain.StageDownloading
	case domain.StageDownloading:
		return to == domain.StageSplitting
	case domain.StageSplitting:
		return to == domain.StageTranscribing
	case domain.StageTranscribing:
		return to == domain.StageAnalyzing
	case domain.StageAnalyzing:
		return to == domain.StageFinalizing
	case domain.StageFinalizing:
		return to == domain.StageDone
	default:
		return false
	}
}
