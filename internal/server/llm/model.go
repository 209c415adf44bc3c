// Package llm talks to generative text models. Every provider is reduced to
// a single Complete call; callers treat the returned text as untrusted.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Model completes a prompt with free text.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion is returned when the provider answers without text.
var ErrEmptyCompletion = errors.New("empty completion")

// StatusError is a non-2xx answer from a provider. The body is not kept.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// Option configures a provider client.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the provider endpoint (proxies, self-hosted
// gateways, tests).
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func buildOptions(defaultBaseURL string, opts []Option) options {
	o := options{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the client for provider ("gemini" or "openai").
func New(provider, apiKey, model string, opts ...Option) (Model, error) {
	switch provider {
	case "gemini":
		return NewGemini(apiKey, model, opts...), nil
	case "openai":
		return NewOpenAI(apiKey, model, opts...), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}
