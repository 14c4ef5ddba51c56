package groq

import (
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

type implClient struct {
	api     *openai.Client
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	retry   RetryConfig
	logger  logger.Logger
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration // per request
	MaxRetries        int
	RequestsPerMinute int // 0 disables client-side limiting
	HTTPClient        *http.Client
	Retry             *RetryConfig // overrides MaxRetries when set
}

// New creates a Groq client on top of the OpenAI-compatible SDK.
func New(log logger.Logger, opts Options) Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Minute
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	rc := DefaultRetryConfig
	rc.MaxRetries = opts.MaxRetries
	if opts.Retry != nil {
		rc = *opts.Retry
	}

	return &implClient{
		api:     openai.NewClientWithConfig(cfg),
		apiKey:  opts.APIKey,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, 1),
		retry:   rc,
		logger:  log,
	}
}
