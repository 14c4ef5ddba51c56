package analyzer

import (
	"context"

	"github.com/nguyentantai21042004/tubedigest/internal/groq"
)

// Chat is the subset of the Groq client used for completions.
type Chat interface {
	Complete(ctx context.Context, req groq.ChatRequest) (groq.ChatResponse, error)
}

// GroqOptions are the fixed generation settings for every call.
type GroqOptions struct {
	Model           string
	Temperature     float64
	MaxTokens       int
	ReasoningEffort string
}

type groqCompleter struct {
	chat Chat
	opts GroqOptions
}

// NewGroqCompleter adapts a Groq chat client to Completer.
func NewGroqCompleter(chat Chat, opts GroqOptions) Completer {
	return &groqCompleter{chat: chat, opts: opts}
}

func (g *groqCompleter) Model() string { return g.opts.Model }

func (g *groqCompleter) Complete(ctx context.Context, system, user string) (Completion, error) {
	res, err := g.chat.Complete(ctx, groq.ChatRequest{
		Model:           g.opts.Model,
		System:          system,
		User:            user,
		Temperature:     g.opts.Temperature,
		MaxTokens:       g.opts.MaxTokens,
		ReasoningEffort: g.opts.ReasoningEffort,
	})
	if err != nil {
		return Completion{}, err
	}

	model := res.Model
	if model == "" {
		model = g.opts.Model
	}
	return Completion{
		Text:             res.Content,
		Model:            model,
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		UsageReported:    res.Usage.Reported,
	}, nil
}
