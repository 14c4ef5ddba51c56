package acquirer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/pkg/fsutil"
)

// AudioFile is the fixed name of the downloaded track inside the audio directory.
const AudioFile = "audio.flac"

// Acquire downloads the audio of videoURL into audioDir/audio.flac,
// resampled to mono at the configured rate.
func (a *implAcquirer) Acquire(ctx context.Context, videoURL, audioDir string) (string, error) {
	outputPath := filepath.Join(audioDir, AudioFile)

	if a.resume && fsutil.NonEmpty(outputPath) {
		a.logger.Info(ctx, "Audio already exists, skipping download: %s", outputPath)
		return outputPath, nil
	}

	// -f bestaudio: best available audio-only stream
	// --extract-audio --audio-format flac: lossless container for the splitter
	// --postprocessor-args: resample once here so every chunk shares the format
	args := []string{
		"-f", "bestaudio",
		"--extract-audio",
		"--audio-format", "flac",
		"--postprocessor-args", fmt.Sprintf("ffmpeg:-ar %d -ac 1", a.sampleRate),
		"--no-playlist",
		"-o", filepath.Join(audioDir, "audio.%(ext)s"),
		videoURL,
	}

	a.logger.Info(ctx, "Downloading audio: %s", videoURL)

	if _, err := a.executor.Execute(ctx, a.binary, args...); err != nil {
		return "", &domain.AcquisitionError{URL: videoURL, Err: err}
	}

	if !fsutil.NonEmpty(outputPath) {
		return "", &domain.AcquisitionError{
			URL: videoURL,
			Err: fmt.Errorf("%s completed but %s is missing or empty", a.binary, outputPath),
		}
	}

	a.logger.Info(ctx, "Download successful: %s", outputPath)
	return outputPath, nil
}
