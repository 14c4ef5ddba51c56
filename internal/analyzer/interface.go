package analyzer

import (
	"context"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

// Analyzer turns transcripts into summaries and one final analysis.
type Analyzer interface {
	Summarize(ctx context.Context, t domain.Transcript) (domain.Summary, error)
	Finalize(ctx context.Context, summaries []domain.Summary) (domain.FinalAnalysis, error)
	Extras(ctx context.Context, transcript string, names []string) ([]Extra, error)
}

// Completer runs one system+user prompt against a language model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (Completion, error)
	Model() string
}

// Completion is the model output plus token accounting. UsageReported is
// false when the provider returned no usage and token counts are zero.
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	UsageReported    bool
}

// Extra is the output of one additional prompt such as quotes or outline.
type Extra struct {
	Name string
	Path string
	Text string
}
