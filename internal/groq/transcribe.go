package groq

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Transcribe uploads req.Path with verbose_json so the billed duration comes
// back with the text. A zero temperature is left to the server default.
func (c *implClient) Transcribe(ctx context.Context, req TranscriptionRequest) (Transcription, error) {
	audioReq := openai.AudioRequest{
		Model:       req.Model,
		FilePath:    req.Path,
		Prompt:      req.Prompt,
		Language:    req.Language,
		Temperature: float32(req.Temperature),
		Format:      openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := call(ctx, c, "transcription", func(ctx context.Context) (openai.AudioResponse, error) {
		return c.api.CreateTranscription(ctx, audioReq)
	})
	if err != nil {
		return Transcription{}, err
	}

	// verbose_json always carries a duration, even for silence.
	if resp.Text == "" && resp.Duration <= 0 {
		return Transcription{}, fmt.Errorf("transcription response has no text or duration: %w", ErrMalformedResponse)
	}

	return Transcription{Text: strings.TrimSpace(resp.Text), Duration: resp.Duration}, nil
}
