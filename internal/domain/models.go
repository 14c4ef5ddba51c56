package domain

import "fmt"

// Chunk is one time-contiguous, size-bounded segment of the downloaded audio.
// Seq starts at 1; Start and Duration are seconds on the source timeline.
type Chunk struct {
	Seq      int
	Path     string
	Start    float64
	Duration float64
	Size     int64
}

// End returns the chunk end position on the source timeline.
func (c Chunk) End() float64 {
	return c.Start + c.Duration
}

func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d: %.3fs-%.3fs (%d bytes)", c.Seq, c.Start, c.End(), c.Size)
}

// Transcript is the speech-to-text result for exactly one chunk.
type Transcript struct {
	Seq          int
	Path         string
	Text         string
	AudioSeconds float64
	Cached       bool // read back from an earlier run
}

// Summary is the model-generated summary of one transcript.
type Summary struct {
	Seq    int
	Path   string
	Text   string
	Cached bool
}

// FinalAnalysis is the single synthesis produced from all chunk summaries.
type FinalAnalysis struct {
	Path     string
	DocxPath string
	Text     string
}

// Stage is a Video Job lifecycle state.
type Stage string

const (
	StageCreated      Stage = "created"
	StageDownloading  Stage = "downloading"
	StageSplitting    Stage = "splitting"
	StageTranscribing Stage = "transcribing"
	StageAnalyzing    Stage = "analyzing"
	StageFinalizing   Stage = "finalizing"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}
