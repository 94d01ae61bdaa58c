package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts chat-completion providers. The model is chosen per call
// so a fallback policy can steer one client across models.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (json.RawMessage, error)
}

// StatusError carries the provider's HTTP-style status so callers can
// classify failures without string matching.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm provider status %d: %s", e.Status, e.Message)
}

// IsTransient reports whether err looks retryable: rate limiting, 5xx-class
// provider failures, timeouts and connection-level faults. Anything else is
// treated as permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status == 429 || statusErr.Status >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "client.timeout") {
		return true
	}
	return false
}

// ErrNotConfigured is returned by the placeholder client used when no
// provider credentials are present.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient fails every call; bootstrap wires it when the provider
// is absent so dev setups without an API key still start.
type PlaceholderClient struct{}

func (PlaceholderClient) Complete(ctx context.Context, model string, messages []Message) (json.RawMessage, error) {
	_ = ctx
	_ = model
	_ = messages
	return nil, ErrNotConfigured
}
