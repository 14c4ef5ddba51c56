package prompts

import "context"

// Store renders named prompt templates. Overrides loaded from disk replace
// the built-in defaults by name.
type Store interface {
	Render(name string, data Data) (string, error)
	Has(name string) bool
	Load(path string) error
	Watch(ctx context.Context) error
}

// Data is passed to every template.
type Data struct {
	VideoID    string
	Seq        int
	Transcript string
	Summaries  string
}

// Template names.
const (
	SummarySystem = "summary_system"
	SummaryUser   = "summary_user"
	FinalSystem   = "final_system"
	FinalUser     = "final_user"
	Quotes        = "quotes"
	Outline       = "outline"
	Actionables   = "actionables"
)
