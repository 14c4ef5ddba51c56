package splitter

import (
	"fmt"
	"math"
)

// MaxChunks bounds the plan so chunk names keep three digits.
const MaxChunks = 999

// epsilon absorbs float noise so an exact multiple never yields an empty tail.
const epsilon = 1e-9

// Segment is a [Start, Start+Duration) window on the source timeline, in seconds.
type Segment struct {
	Start    float64
	Duration float64
}

// Plan computes split points so each chunk's estimated size stays under
// maxBytes*margin. Boundaries come from one timeline, so segments are
// contiguous and cover the whole source. The last segment holds the remainder.
func Plan(p Probe, maxBytes int64, margin float64) ([]Segment, error) {
	if p.Duration <= 0 {
		return nil, fmt.Errorf("invalid source duration %v", p.Duration)
	}
	if p.Size <= 0 {
		return nil, fmt.Errorf("invalid source size %d", p.Size)
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("invalid max chunk size %d", maxBytes)
	}
	if margin <= 0 || margin > 1 {
		return nil, fmt.Errorf("invalid safety margin %v", margin)
	}

	if p.Size <= maxBytes {
		return []Segment{{Start: 0, Duration: p.Duration}}, nil
	}

	bytesPerSecond := float64(p.Size) / p.Duration
	segDuration := float64(maxBytes) * margin / bytesPerSecond
	n := int(math.Ceil(p.Duration/segDuration - epsilon))
	if n > MaxChunks {
		return nil, fmt.Errorf("source needs %d chunks, more than the limit of %d; raise the chunk size", n, MaxChunks)
	}

	segments := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * segDuration
		end := math.Min(float64(i+1)*segDuration, p.Duration)
		if i == n-1 {
			end = p.Duration
		}
		segments = append(segments, Segment{Start: start, Duration: end - start})
	}

	return segments, nil
}
