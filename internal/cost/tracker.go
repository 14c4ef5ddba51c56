package cost

import (
	"time"
)

// StageTotals aggregates entries of one call type.
type StageTotals struct {
	Calls            int     `json:"calls"`
	Failed           int     `json:"failed"`
	Cached           int     `json:"cached"`
	Cost             float64 `json:"cost"`
	AudioSeconds     float64 `json:"audio_seconds,omitempty"`
	PromptTokens     int     `json:"prompt_tokens,omitempty"`
	CompletionTokens int     `json:"completion_tokens,omitempty"`
}

// Report is a point-in-time snapshot of the ledger.
type Report struct {
	TotalCost             float64                  `json:"total_cost"`
	TotalAudioSeconds     float64                  `json:"total_audio_seconds"`
	TotalCalls            int                      `json:"total_calls"`
	FailedCalls           int                      `json:"failed_calls"`
	CachedCalls           int                      `json:"cached_calls"`
	TotalPromptTokens     int                      `json:"total_prompt_tokens"`
	TotalCompletionTokens int                      `json:"total_completion_tokens"`
	PerStage              map[CallType]StageTotals `json:"per_stage"`
	Entries               []Entry                  `json:"entries"`
}

func (t *implTracker) Record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

func (t *implTracker) Report() Report {
	t.mu.Lock()
	entries := append([]Entry(nil), t.entries...)
	t.mu.Unlock()

	r := Report{
		PerStage: make(map[CallType]StageTotals),
		Entries:  entries,
	}

	for _, e := range entries {
		r.TotalCost += e.Cost
		r.TotalAudioSeconds += e.AudioSeconds
		r.TotalCalls++
		r.TotalPromptTokens += e.PromptTokens
		r.TotalCompletionTokens += e.CompletionTokens

		st := r.PerStage[e.CallType]
		st.Calls++
		st.Cost += e.Cost
		st.AudioSeconds += e.AudioSeconds
		st.PromptTokens += e.PromptTokens
		st.CompletionTokens += e.CompletionTokens
		if e.Failed() {
			r.FailedCalls++
			st.Failed++
		}
		if e.Cached {
			r.CachedCalls++
			st.Cached++
		}
		r.PerStage[e.CallType] = st
	}

	return r
}
