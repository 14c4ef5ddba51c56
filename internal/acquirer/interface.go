package acquirer

import "context"

// Acquirer fetches a video's best audio track as a lossless file.
type Acquirer interface {
	Acquire(ctx context.Context, videoURL, audioDir string) (string, error)
}
