package analyzer

import (
	"sync/atomic"

	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/internal/prompts"
)

// Output file names inside the analysis directory.
const (
	FinalAnalysisFile = "final_analysis.txt"
	FinalDocxFile     = "final_analysis.docx"
	summarySuffix     = "_summary.txt"
)

type implAnalyzer struct {
	completer Completer
	prompts   prompts.Store
	tracker   cost.Tracker
	logger    logger.Logger
	cfg       Config

	// set once any summary is generated rather than read back
	fresh atomic.Bool
}

// Config locates outputs and prices completions.
type Config struct {
	Dir     string
	VideoID string
	Pricing cost.Pricing
	Docx    bool
	Resume  bool
}

// New creates an Analyzer. Every completion is recorded on tracker.
func New(completer Completer, store prompts.Store, tracker cost.Tracker, log logger.Logger, cfg Config) Analyzer {
	return &implAnalyzer{
		completer: completer,
		prompts:   store,
		tracker:   tracker,
		logger:    log,
		cfg:       cfg,
	}
}
