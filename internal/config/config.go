package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Tools         ToolsConfig         `yaml:"tools"`
	Splitter      SplitterConfig      `yaml:"splitter"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	API           APIConfig           `yaml:"api"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Prompts       PromptsConfig       `yaml:"prompts"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`

	// Credentials come from the environment only.
	GroqAPIKey    string   `yaml:"-"`
	GeminiAPIKeys []string `yaml:"-"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ToolsConfig struct {
	YtDlp   string        `yaml:"yt_dlp"`
	FFmpeg  string        `yaml:"ffmpeg"`
	FFprobe string        `yaml:"ffprobe"`
	Timeout time.Duration `yaml:"timeout"`
}

type SplitterConfig struct {
	MaxChunkMB    float64 `yaml:"max_chunk_mb"`
	SafetyMargin  float64 `yaml:"safety_margin"`
	MaxResplits   *int    `yaml:"max_resplits"`
	ResplitFactor float64 `yaml:"resplit_factor"`
	SampleRate    int     `yaml:"sample_rate"`
}

type TranscriptionConfig struct {
	Model            string  `yaml:"model"`
	Language         string  `yaml:"language"`
	Prompt           string  `yaml:"prompt"`
	PricePerHour     float64 `yaml:"price_per_hour"`
	MinBilledSeconds float64 `yaml:"min_billed_seconds"`
}

type AnalysisConfig struct {
	Provider         string   `yaml:"provider"`
	Model            string   `yaml:"model"`
	Temperature      *float64 `yaml:"temperature"`
	MaxTokens        int      `yaml:"max_tokens"`
	ReasoningEffort  string   `yaml:"reasoning_effort"`
	InputPerMillion  float64  `yaml:"input_per_million"`
	OutputPerMillion float64  `yaml:"output_per_million"`
	Extras           []string `yaml:"extras"`
	Docx             *bool    `yaml:"docx"`
}

type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxRetries        *int          `yaml:"max_retries"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type PromptsConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

type PipelineConfig struct {
	Resume        *bool `yaml:"resume"`
	CleanupChunks bool  `yaml:"cleanup_chunks"`
}

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Validate checks value ranges and fills defaults. Credentials are checked
// separately by RequireCredentials so that `doctor` can run without them.
func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		c.Paths.Output = "videos"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = "yt-dlp"
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = "ffprobe"
	}
	if c.Tools.Timeout == 0 {
		c.Tools.Timeout = 30 * time.Minute
	}

	if c.Splitter.MaxChunkMB == 0 {
		c.Splitter.MaxChunkMB = 18
	}
	if c.Splitter.MaxChunkMB < 0 {
		return fmt.Errorf("splitter.max_chunk_mb must be positive")
	}
	if c.Splitter.SafetyMargin == 0 {
		c.Splitter.SafetyMargin = 0.9
	}
	if c.Splitter.SafetyMargin < 0 || c.Splitter.SafetyMargin > 1 {
		return fmt.Errorf("splitter.safety_margin must be in (0, 1]")
	}
	if c.Splitter.MaxResplits == nil {
		n := 2
		c.Splitter.MaxResplits = &n
	}
	if *c.Splitter.MaxResplits < 0 {
		return fmt.Errorf("splitter.max_resplits must not be negative")
	}
	if c.Splitter.ResplitFactor == 0 {
		c.Splitter.ResplitFactor = 0.8
	}
	if c.Splitter.ResplitFactor < 0 || c.Splitter.ResplitFactor >= 1 {
		return fmt.Errorf("splitter.resplit_factor must be in (0, 1)")
	}
	if c.Splitter.SampleRate == 0 {
		c.Splitter.SampleRate = 16000
	}

	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-large-v3-turbo"
	}
	if c.Transcription.PricePerHour == 0 {
		c.Transcription.PricePerHour = 0.04
	}
	if c.Transcription.MinBilledSeconds == 0 {
		c.Transcription.MinBilledSeconds = 10
	}

	c.Analysis.Provider = strings.ToLower(c.Analysis.Provider)
	switch c.Analysis.Provider {
	case "":
		c.Analysis.Provider = ProviderGroq
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("analysis.provider must be %q or %q, got %q", ProviderGroq, ProviderGemini, c.Analysis.Provider)
	}
	if c.Analysis.Model == "" {
		if c.Analysis.Provider == ProviderGemini {
			c.Analysis.Model = "gemini-2.5-flash"
		} else {
			c.Analysis.Model = "openai/gpt-oss-120b"
		}
	}
	if c.Analysis.Temperature == nil {
		t := 1.0
		c.Analysis.Temperature = &t
	}
	if *c.Analysis.Temperature < 0 || *c.Analysis.Temperature > 2 {
		return fmt.Errorf("analysis.temperature must be in [0, 2]")
	}
	if c.Analysis.MaxTokens == 0 {
		c.Analysis.MaxTokens = 8192
	}
	if c.Analysis.ReasoningEffort == "" && c.Analysis.Provider == ProviderGroq {
		c.Analysis.ReasoningEffort = "medium"
	}
	if c.Analysis.InputPerMillion == 0 && c.Analysis.OutputPerMillion == 0 {
		if c.Analysis.Provider == ProviderGemini {
			c.Analysis.InputPerMillion = 0.30
			c.Analysis.OutputPerMillion = 2.50
		} else {
			c.Analysis.InputPerMillion = 0.15
			c.Analysis.OutputPerMillion = 0.75
		}
	}
	if c.Analysis.Docx == nil {
		c.Analysis.Docx = boolPtr(true)
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 10 * time.Minute
	}
	if c.API.MaxRetries == nil {
		n := 2
		c.API.MaxRetries = &n
	}
	if *c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative")
	}

	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}

	if c.Pipeline.Resume == nil {
		c.Pipeline.Resume = boolPtr(true)
	}

	return nil
}

// MaxChunkBytes returns the chunk byte cap.
func (c *Config) MaxChunkBytes() int64 {
	return int64(c.Splitter.MaxChunkMB * 1024 * 1024)
}

// Resume reports whether existing artifacts are reused.
func (c *Config) Resume() bool {
	return c.Pipeline.Resume == nil || *c.Pipeline.Resume
}

// DocxEnabled reports whether the final analysis is also exported as .docx.
func (c *Config) DocxEnabled() bool {
	return c.Analysis.Docx == nil || *c.Analysis.Docx
}

// Retries returns the configured API retry budget.
func (c *Config) Retries() int {
	if c.API.MaxRetries == nil {
		return 0
	}
	return *c.API.MaxRetries
}

// Temperature returns the analysis sampling temperature. An explicit 0 is kept.
func (c *Config) Temperature() float64 {
	if c.Analysis.Temperature == nil {
		return 1
	}
	return *c.Analysis.Temperature
}

// MaxResplits returns how many times an oversized split is retried.
func (c *Config) MaxResplits() int {
	if c.Splitter.MaxResplits == nil {
		return 2
	}
	return *c.Splitter.MaxResplits
}

func boolPtr(b bool) *bool { return &b }
