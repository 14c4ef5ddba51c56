// Package gemini implements analyzer.Completer on Google's Gemini API,
// rotating through several API keys when one hits its quota.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/tubedigest/internal/analyzer"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

// ErrEmptyResponse is returned when Gemini answers without any candidate text.
var ErrEmptyResponse = errors.New("empty response from Gemini")

type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type implCompleter struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	clients    map[string]*genai.Client

	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
	logger      logger.Logger
	generate    generateFunc
}

// Options tunes generation.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // per attempt, 0 disables
}

// New creates a Completer that rotates through apiKeys on rate limits.
func New(apiKeys []string, log logger.Logger, opts Options) (analyzer.Completer, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini: no API keys")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}

	c := &implCompleter{
		apiKeys:     apiKeys,
		clients:     make(map[string]*genai.Client),
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   int32(opts.MaxTokens),
		timeout:     opts.Timeout,
		logger:      log,
	}
	c.generate = c.generateWithClient
	return c, nil
}

func (c *implCompleter) Model() string { return c.model }

// Complete sends one prompt. Keys are tried in turn while Gemini reports
// 429 or quota exhaustion; other errors return immediately.
func (c *implCompleter) Complete(ctx context.Context, system, user string) (analyzer.Completion, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	contents := genai.Text(user)

	var lastErr error
	for range len(c.apiKeys) {
		idx, key := c.key()

		result, err := c.attempt(ctx, key, contents, cfg)
		if err != nil {
			if isQuotaError(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				c.rotateKey(idx)
				lastErr = err
				continue
			}
			return analyzer.Completion{}, fmt.Errorf("generate content: %w", err)
		}

		return toCompletion(result, c.model)
	}

	return analyzer.Completion{}, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// attempt runs one request bounded by the per-call timeout.
func (c *implCompleter) attempt(ctx context.Context, key string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.generate(ctx, key, c.model, contents, cfg)
}

func (c *implCompleter) generateWithClient(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := c.client(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent(ctx, model, contents, cfg)
}

func (c *implCompleter) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cl, ok := c.clients[apiKey]; ok {
		return cl, nil
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	c.clients[apiKey] = cl
	return cl, nil
}

func (c *implCompleter) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotateKey advances past idx unless another caller already did.
func (c *implCompleter) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func toCompletion(result *genai.GenerateContentResponse, model string) (analyzer.Completion, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return analyzer.Completion{}, ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	out := analyzer.Completion{
		Text:  strings.TrimSpace(text.String()),
		Model: model,
	}
	if result.ModelVersion != "" {
		out.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.CompletionTokens = int(u.CandidatesTokenCount)
		out.UsageReported = true
	}
	return out, nil
}
