package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-forge/internal/shared/telemetry"
)

// FallbackPolicy is the shared model-retry policy: try the primary model,
// retry it once after RetryDelay on a transient failure, then make a single
// attempt against the secondary model after FallbackDelay. Non-transient
// failures surface immediately.
type FallbackPolicy struct {
	Primary       string
	Secondary     string
	RetryDelay    time.Duration
	FallbackDelay time.Duration

	// Transient overrides the default classification; nil means IsTransient.
	Transient func(error) bool
}

// DefaultPolicy returns the standard delays used across features.
func DefaultPolicy(primary, secondary string) FallbackPolicy {
	return FallbackPolicy{
		Primary:       primary,
		Secondary:     secondary,
		RetryDelay:    2 * time.Second,
		FallbackDelay: time.Second,
	}
}

// Complete runs one completion under the policy. The returned payload comes
// from whichever model first succeeded.
func (p FallbackPolicy) Complete(ctx context.Context, client Client, messages []Message) (json.RawMessage, error) {
	transient := p.Transient
	if transient == nil {
		transient = IsTransient
	}

	raw, err := client.Complete(ctx, p.Primary, messages)
	if err == nil {
		return raw, nil
	}
	if !transient(err) {
		return nil, err
	}

	telemetry.Info("llm.retry", map[string]any{
		"model":   p.Primary,
		"attempt": 1,
		"error":   err.Error(),
	})
	if waitErr := sleepCtx(ctx, p.RetryDelay); waitErr != nil {
		return nil, waitErr
	}

	raw, err = client.Complete(ctx, p.Primary, messages)
	if err == nil {
		return raw, nil
	}
	if !transient(err) {
		return nil, err
	}

	telemetry.Info("llm.fallback", map[string]any{
		"from":  p.Primary,
		"to":    p.Secondary,
		"error": err.Error(),
	})
	if waitErr := sleepCtx(ctx, p.FallbackDelay); waitErr != nil {
		return nil, waitErr
	}

	raw, fallbackErr := client.Complete(ctx, p.Secondary, messages)
	if fallbackErr != nil {
		return nil, fmt.Errorf("fallback model %s: %w", p.Secondary, fallbackErr)
	}
	return raw, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
