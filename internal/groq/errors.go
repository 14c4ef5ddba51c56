package groq

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMalformedResponse is returned when a 2xx body does not match the
// expected schema.
var ErrMalformedResponse = errors.New("malformed api response")

// ErrMissingAPIKey is returned before any request when no key is configured.
var ErrMissingAPIKey = errors.New("groq api key is not configured")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Err        error // SDK error, if any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("groq api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("groq api error: status %d type %s message %s", e.StatusCode, e.Type, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Temporary reports whether the request may succeed if retried.
func (e *APIError) Temporary() bool {
	return isRetryableStatus(e.StatusCode)
}

// fromSDKError maps go-openai errors onto APIError and ErrMalformedResponse.
// Transport errors pass through wrapped so retry can classify them.
func fromSDKError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.HTTPStatusCode,
			Type:       apiErr.Type,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		out := &APIError{StatusCode: reqErr.HTTPStatusCode, Err: err}
		if len(reqErr.Body) > 0 {
			out.Message = string(reqErr.Body)
		}
		return out
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: decode response: %w: %v", op, ErrMalformedResponse, err)
	}

	return fmt.Errorf("%s: request failed: %w", op, err)
}
