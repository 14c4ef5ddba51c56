package processor

import (
	"context"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
)

// Processor runs one video through the whole pipeline.
type Processor interface {
	Process(ctx context.Context, videoURL string) (*Result, error)
}

// Observer receives progress notifications. Calls are never concurrent,
// though ChunkTranscribed may arrive from a worker goroutine.
type Observer interface {
	StageStarted(stage domain.Stage)
	ChunksPlanned(total int)
	ChunkTranscribed(t domain.Transcript)
	ChunkSummarized(s domain.Summary)
}

// Result describes a finished job.
type Result struct {
	Job        *video.Job
	Final      domain.FinalAnalysis
	ReportPath string
	Report     Report
}
