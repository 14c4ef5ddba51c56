package cost

import "time"

// CallType groups entries in the per-stage breakdown.
type CallType string

const (
	CallTranscription CallType = "transcription"
	CallSummary       CallType = "summary"
	CallFinalize      CallType = "finalize"
	CallExtra         CallType = "extra"
)

// UsageSource tells whether token counts came from the API or were estimated.
type UsageSource string

const (
	UsageActual   UsageSource = "actual"
	UsageEstimate UsageSource = "estimate"
)

// Entry is one external API call. Failed calls are recorded with Error set
// and, unless the provider billed them, zero cost.
type Entry struct {
	Timestamp        time.Time     `json:"timestamp"`
	CallType         CallType      `json:"call_type"`
	Model            string        `json:"model"`
	Seq              int           `json:"seq,omitempty"`
	Name             string        `json:"name,omitempty"`
	Cost             float64       `json:"cost"`
	AudioSeconds     float64       `json:"audio_seconds,omitempty"`
	PromptTokens     int           `json:"prompt_tokens,omitempty"`
	CompletionTokens int           `json:"completion_tokens,omitempty"`
	UsageSource      UsageSource   `json:"usage_source,omitempty"`
	Latency          time.Duration `json:"latency_ns"`
	Cached           bool          `json:"cached,omitempty"`
	Error            string        `json:"error,omitempty"`
}

// Failed reports whether the call returned an error.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// EstimateTokens approximates a token count from text length when the
// provider does not report usage. Roughly four characters per token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
