package domain

import "fmt"

// AcquisitionError reports a failed audio download.
type AcquisitionError struct {
	URL string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire audio from %s: %v", e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// ChunkSizeExceededError reports a produced chunk larger than the configured cap.
// The chunk is left on disk untouched.
type ChunkSizeExceededError struct {
	Seq   int
	Path  string
	Size  int64
	Limit int64
}

func (e *ChunkSizeExceededError) Error() string {
	return fmt.Sprintf("chunk %d (%s) is %d bytes, exceeds limit of %d bytes", e.Seq, e.Path, e.Size, e.Limit)
}

// SplitError reports a failure of the codec tool while splitting audio.
type SplitError struct {
	Seq int
	Err error
}

func (e *SplitError) Error() string {
	if e.Seq == 0 {
		return fmt.Sprintf("split audio: %v", e.Err)
	}
	return fmt.Sprintf("split chunk %d: %v", e.Seq, e.Err)
}

func (e *SplitError) Unwrap() error { return e.Err }

// TranscriptionError reports a failed or malformed speech-to-text call.
type TranscriptionError struct {
	Seq int
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe chunk %d: %v", e.Seq, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// AnalysisError reports a failed summary, finalize, or extra prompt call.
// Seq is zero for operations that span the whole job.
type AnalysisError struct {
	Op  string
	Seq int
	Err error
}

func (e *AnalysisError) Error() string {
	if e.Seq > 0 {
		return fmt.Sprintf("%s chunk %d: %v", e.Op, e.Seq, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ConfigurationError reports missing or invalid settings, such as an absent credential.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Message)
}

// StageError ties a job failure to the lifecycle stage that was running.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
