package transcriber

import (
	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

// FullTranscriptFile is written next to the per-chunk transcripts.
const FullTranscriptFile = "full_transcript.txt"

type implTranscriber struct {
	speech  Speech
	tracker cost.Tracker
	logger  logger.Logger
	cfg     Config
}

// Config carries the request options and output location.
type Config struct {
	Dir           string
	Model         string
	Language      string
	Prompt        string
	Pricing       cost.Pricing
	Resume        bool
	MaxConcurrent int
}

// New creates a Transcriber that records every call on tracker.
func New(speech Speech, tracker cost.Tracker, log logger.Logger, cfg Config) Transcriber {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &implTranscriber{
		speech:  speech,
		tracker: tracker,
		logger:  log,
		cfg:     cfg,
	}
}
