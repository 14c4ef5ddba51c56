package groq

import "context"

// Client talks to Groq's OpenAI-compatible speech and chat endpoints.
type Client interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (Transcription, error)
	Complete(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// TranscriptionRequest uploads one audio file.
type TranscriptionRequest struct {
	Path        string
	Model       string
	Language    string
	Prompt      string
	Temperature float64
}

// Transcription is the verbose_json response reduced to what the pipeline uses.
// Duration is the audio length the provider billed, in seconds.
type Transcription struct {
	Text     string
	Duration float64
}

// ChatRequest is a single system+user completion.
type ChatRequest struct {
	Model           string
	System          string
	User            string
	Temperature     float64
	MaxTokens       int
	ReasoningEffort string
}

// Usage is token accounting as reported by the API. Reported is false when
// the response carried no usage block.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Reported         bool
}

// ChatResponse is the first choice of a completion.
type ChatResponse struct {
	Content string
	Model   string
	Usage   Usage
}
