package executor

import "context"

// Executor runs external command-line tools (yt-dlp, ffprobe, ffmpeg).
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
