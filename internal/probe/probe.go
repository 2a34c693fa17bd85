// Package probe issues one-shot connectivity tests against a profile's
// endpoint and classifies the outcome.
package probe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"modelmgr/config"
	"modelmgr/internal/providers"
	"modelmgr/internal/utils"
)

// DefaultTimeout bounds the single probe attempt.
const DefaultTimeout = 30 * time.Second

const (
	userAgent        = "Claude-Code-Model-Manager/1.0.0"
	anthropicVersion = "2023-06-01"
	testPhrase       = "Hello, this is a connection test. Please respond with 'OK'."
	testMaxTokens    = 10

	// responseBodyLimit caps how much of an error response is kept.
	responseBodyLimit = 4 << 10
)

// Status classifies a probe outcome.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusInvalidProfile  Status = "invalid_profile"
	StatusAuthFailure     Status = "auth_failure"
	StatusNotFound        Status = "not_found"
	StatusAPIError        Status = "api_error"
	StatusTimeout         Status = "timeout"
	StatusConnectionError Status = "connection_error"
	StatusUnknownError    Status = "unknown_error"
)

// Result is the outcome of one probe attempt.
type Result struct {
	Status     Status        `json:"status"`
	Success    bool          `json:"success"`
	StatusCode int           `json:"statusCode,omitempty"`
	Elapsed    time.Duration `json:"-"`
	ElapsedMs  int64         `json:"durationMs,omitempty"`
	Message    string        `json:"message"`
	Body       string        `json:"body,omitempty"`
}

// Prober runs connectivity tests. It is safe for concurrent use; each Test
// call is independent. There is no per-profile deduplication of in-flight
// probes.
type Prober struct {
	client *http.Client
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.client.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

// New creates a Prober with the default 30 second timeout.
func New(opts ...Option) *Prober {
	p := &Prober{
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

// buildRequest assembles the provider-specific test request. The endpoint
// path and auth header style come from the vendor table; this selection is
// independent of the exporter's variable disambiguation.
func buildRequest(p config.Profile) (*http.Request, error) {
	provider := providers.Detect(p.BaseURL)

	body, err := json.Marshal(chatRequest{
		Model:     p.Model,
		MaxTokens: testMaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: testPhrase}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := utils.JoinEndpoint(p.BaseURL, provider.ChatPath)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if p.APIKey != "" {
		switch provider.Scheme {
		case providers.AuthAPIKey:
			req.Header.Set("x-api-key", p.APIKey)
			req.Header.Set("anthropic-version", anthropicVersion)
		default:
			req.Header.Set("Authorization", "Bearer "+p.APIKey)
		}
	}
	return req, nil
}

// Test issues exactly one request against the profile's endpoint. It never
// retries; retry policy belongs to the caller. The call blocks for up to the
// configured timeout, so interactive callers should run it off their main
// goroutine.
func (pr *Prober) Test(p config.Profile) *Result {
	if p.BaseURL == "" {
		return &Result{Status: StatusInvalidProfile, Message: "base URL is required"}
	}
	if p.Model == "" {
		return &Result{Status: StatusInvalidProfile, Message: "model is required"}
	}

	req, err := buildRequest(p)
	if err != nil {
		return &Result{Status: StatusUnknownError, Message: err.Error()}
	}

	start := time.Now()
	resp, err := pr.client.Do(req)
	if err != nil {
		return pr.classifyTransportError(err)
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	switch resp.StatusCode {
	case http.StatusOK:
		return &Result{
			Status:     StatusSuccess,
			Success:    true,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			ElapsedMs:  elapsed.Milliseconds(),
			Message:    "connection test succeeded, the profile is usable",
		}
	case http.StatusUnauthorized:
		return &Result{
			Status:     StatusAuthFailure,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			ElapsedMs:  elapsed.Milliseconds(),
			Message:    "authentication failed (HTTP 401): check the API key",
		}
	case http.StatusNotFound:
		return &Result{
			Status:     StatusNotFound,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			ElapsedMs:  elapsed.Milliseconds(),
			Message:    "model or endpoint not found (HTTP 404): check the model name and base URL",
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
		return &Result{
			Status:     StatusAPIError,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			ElapsedMs:  elapsed.Milliseconds(),
			Message:    fmt.Sprintf("API request failed (HTTP %d)", resp.StatusCode),
			Body:       string(body),
		}
	}
}

// classifyTransportError maps a failed round trip onto the probe taxonomy:
// timeouts, connection-level failures (refused, DNS, unreachable), and
// everything else.
func (pr *Prober) classifyTransportError(err error) *Result {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Result{
			Status:  StatusTimeout,
			Message: fmt.Sprintf("request timed out after %s: check the network and base URL", pr.client.Timeout),
		}
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return &Result{
			Status:  StatusConnectionError,
			Message: "could not connect to the server: check the base URL",
		}
	}

	return &Result{Status: StatusUnknownError, Message: err.Error()}
}
