package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/groq"
)

// Transcriber converts audio chunks into persisted transcripts.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk domain.Chunk) (domain.Transcript, error)
	// TranscribeAll returns one transcript per chunk, in Seq order. onDone,
	// if set, is called after each chunk completes.
	TranscribeAll(ctx context.Context, chunks []domain.Chunk, onDone func(domain.Transcript)) ([]domain.Transcript, error)
	// Combine writes the full transcript and returns its text.
	Combine(transcripts []domain.Transcript) (string, error)
}

// Speech is the subset of the Groq client used here.
type Speech interface {
	Transcribe(ctx context.Context, req groq.TranscriptionRequest) (groq.Transcription, error)
}
