package cost

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportTotalEqualsSumOfEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"single transcription", []Entry{{CallType: CallTranscription, Cost: 0.0123, AudioSeconds: 1107}}},
		{
			name: "full job",
			entries: []Entry{
				{CallType: CallTranscription, Seq: 1, Cost: 0.018, AudioSeconds: 1620},
				{CallType: CallTranscription, Seq: 2, Cost: 0.018, AudioSeconds: 1620},
				{CallType: CallTranscription, Seq: 3, Cost: 0.0084444, AudioSeconds: 760},
				{CallType: CallSummary, Seq: 1, Cost: 0.00031, PromptTokens: 1200, CompletionTokens: 180},
				{CallType: CallSummary, Seq: 2, Cost: 0.00029, PromptTokens: 1100, CompletionTokens: 170},
				{CallType: CallSummary, Seq: 3, Cost: 0.00012, PromptTokens: 500, CompletionTokens: 60},
				{CallType: CallFinalize, Cost: 0.0011, PromptTokens: 600, CompletionTokens: 1400},
			},
		},
		{
			name: "failed and cached calls",
			entries: []Entry{
				{CallType: CallTranscription, Seq: 1, Cached: true},
				{CallType: CallTranscription, Seq: 2, Error: "status 500"},
				{CallType: CallSummary, Seq: 1, Cost: 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			var want float64
			for _, e := range tt.entries {
				tr.Record(e)
				want += e.Cost
			}

			r := tr.Report()
			assert.InDelta(t, want, r.TotalCost, 1e-12)
			assert.Equal(t, len(tt.entries), r.TotalCalls)
			require.Len(t, r.Entries, len(tt.entries))

			var stageSum float64
			for _, st := range r.PerStage {
				stageSum += st.Cost
			}
			assert.InDelta(t, r.TotalCost, stageSum, 1e-12)
		})
	}
}

func TestReportBreakdown(t *testing.T) {
	tr := New()
	tr.Record(Entry{CallType: CallTranscription, Seq: 1, Cost: 0.01, AudioSeconds: 100})
	tr.Record(Entry{CallType: CallTranscription, Seq: 2, Error: "timeout"})
	tr.Record(Entry{CallType: CallTranscription, Seq: 3, Cached: true, AudioSeconds: 50})
	tr.Record(Entry{CallType: CallSummary, Seq: 1, Cost: 0.002, PromptTokens: 10, CompletionTokens: 20})

	r := tr.Report()
	assert.Equal(t, 1, r.FailedCalls)
	assert.Equal(t, 1, r.CachedCalls)
	assert.InDelta(t, 150, r.TotalAudioSeconds, 1e-9)
	assert.Equal(t, 10, r.TotalPromptTokens)
	assert.Equal(t, 20, r.TotalCompletionTokens)

	tx := r.PerStage[CallTranscription]
	assert.Equal(t, 3, tx.Calls)
	assert.Equal(t, 1, tx.Failed)
	assert.Equal(t, 1, tx.Cached)
	assert.Equal(t, 1, r.PerStage[CallSummary].Calls)
	assert.NotContains(t, r.PerStage, CallFinalize)
}

func TestRecordKeepsOrderAndStampsTime(t *testing.T) {
	tr := New()
	for seq := 1; seq <= 3; seq++ {
		tr.Record(Entry{CallType: CallSummary, Seq: seq})
	}

	r := tr.Report()
	for i, e := range r.Entries {
		assert.Equal(t, i+1, e.Seq)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestReportIsSnapshot(t *testing.T) {
	tr := New()
	tr.Record(Entry{CallType: CallSummary, Cost: 1})
	r := tr.Report()
	tr.Record(Entry{CallType: CallSummary, Cost: 1})

	assert.Len(t, r.Entries, 1)
	assert.InDelta(t, 1, r.TotalCost, 1e-12)
}

func TestConcurrentRecord(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Record(Entry{CallType: CallTranscription, Seq: i, Cost: 0.001})
		}(i)
	}
	wg.Wait()

	r := tr.Report()
	assert.Equal(t, 50, r.TotalCalls)
	assert.InDelta(t, 0.05, r.TotalCost, 1e-9)
}

func TestPricing(t *testing.T) {
	p := Pricing{InputPerMillion: 0.15, OutputPerMillion: 0.75, AudioPerHour: 0.04, MinBilledSeconds: 10}

	assert.InDelta(t, 0.15+0.75, p.ChatCost(1_000_000, 1_000_000), 1e-12)
	assert.InDelta(t, 0.0, p.ChatCost(0, 0), 1e-12)

	tests := []struct {
		name    string
		seconds float64
		want    float64
	}{
		{"one hour", 3600, 0.04},
		{"below minimum is billed as minimum", 2, 10.0 / 3600 * 0.04},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.AudioCost(tt.seconds), 1e-12)
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("hi"))
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}
