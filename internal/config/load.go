package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "config.yaml"

const (
	EnvGroqAPIKey    = "GROQ_API_KEY"
	EnvGeminiAPIKeys = "GEMINI_API_KEYS"
	EnvOutputDir     = "TUBEDIGEST_OUTPUT_DIR"
	EnvLogLevel      = "TUBEDIGEST_LOG_LEVEL"
)

// Load reads the YAML file at path, applies environment overrides and
// defaults. A missing file is an error unless path is DefaultPath.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.GroqAPIKey = strings.TrimSpace(os.Getenv(EnvGroqAPIKey))

	if v := os.Getenv(EnvGeminiAPIKeys); v != "" {
		cfg.GeminiAPIKeys = nil
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.GeminiAPIKeys = append(cfg.GeminiAPIKeys, key)
			}
		}
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.Paths.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}

// RequireCredentials fails fast when a credential needed by the configured
// providers is missing.
func (c *Config) RequireCredentials() error {
	if c.GroqAPIKey == "" {
		return &domain.ConfigurationError{
			Field:   EnvGroqAPIKey,
			Message: "not set; export it or add it to .env",
		}
	}
	if c.Analysis.Provider == ProviderGemini && len(c.GeminiAPIKeys) == 0 {
		return &domain.ConfigurationError{
			Field:   EnvGeminiAPIKeys,
			Message: "required when analysis.provider is gemini",
		}
	}
	return nil
}
