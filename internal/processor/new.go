package processor

import (
	"github.com/nguyentantai21042004/tubedigest/internal/acquirer"
	"github.com/nguyentantai21042004/tubedigest/internal/analyzer"
	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/internal/splitter"
	"github.com/nguyentantai21042004/tubedigest/internal/transcriber"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
)

// Deps are the stage components. Transcriber and Analyzer write into the
// job's layout and report to its tracker, so they are built per job.
type Deps struct {
	Acquirer       acquirer.Acquirer
	Splitter       splitter.Splitter
	NewTranscriber func(job *video.Job, tracker cost.Tracker) transcriber.Transcriber
	NewAnalyzer    func(job *video.Job, tracker cost.Tracker) analyzer.Analyzer
}

// Options tunes chunking and outputs.
type Options struct {
	OutputDir     string
	MaxChunkBytes int64
	SafetyMargin  float64
	MaxResplits   int
	ResplitFactor float64
	Extras        []string
	CleanupChunks bool
	Observer      Observer
}

type implProcessor struct {
	deps   Deps
	opts   Options
	logger logger.Logger
}

// New creates a new Processor instance
func New(deps Deps, log logger.Logger, opts Options) Processor {
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.SafetyMargin == 0 {
		opts.SafetyMargin = 0.9
	}
	if opts.ResplitFactor == 0 {
		opts.ResplitFactor = 0.8
	}
	return &implProcessor{
		deps:   deps,
		opts:   opts,
		logger: log,
	}
}

type nopObserver struct{}

func (nopObserver) StageStarted(domain.Stage)          {}
func (nopObserver) ChunksPlanned(int)                  {}
func (nopObserver) ChunkTranscribed(domain.Transcript) {}
func (nopObserver) ChunkSummarized(domain.Summary)     {}
