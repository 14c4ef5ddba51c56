package cost

import "math"

// Pricing holds the tariffs used when the provider does not report a cost.
type Pricing struct {
	InputPerMillion  float64 // USD per million prompt tokens
	OutputPerMillion float64 // USD per million completion tokens
	AudioPerHour     float64 // USD per hour of audio
	MinBilledSeconds float64 // shortest billable audio request
}

// ChatCost prices one completion call.
func (p Pricing) ChatCost(promptTokens, completionTokens int) float64 {
	return float64(promptTokens)/1e6*p.InputPerMillion +
		float64(completionTokens)/1e6*p.OutputPerMillion
}

// AudioCost prices one transcription request of the given length.
func (p Pricing) AudioCost(seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	billed := math.Max(seconds, p.MinBilledSeconds)
	return billed / 3600 * p.AudioPerHour
}
