package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type scriptedClient struct {
	calls   []string
	results map[int]scriptedResult
}

type scriptedResult struct {
	raw json.RawMessage
	err error
}

func (c *scriptedClient) Complete(ctx context.Context, model string, messages []Message) (json.RawMessage, error) {
	c.calls = append(c.calls, model)
	res, ok := c.results[len(c.calls)-1]
	if !ok {
		return nil, errors.New("unscripted call")
	}
	return res.raw, res.err
}

func testPolicy() FallbackPolicy {
	p := DefaultPolicy("primary-model", "secondary-model")
	p.RetryDelay = 0
	p.FallbackDelay = 0
	return p
}

func TestFallbackPrimarySucceedsFirstTry(t *testing.T) {
	client := &scriptedClient{results: map[int]scriptedResult{
		0: {raw: json.RawMessage(`{"ok":true}`)},
	}}

	raw, err := testPolicy().Complete(context.Background(), client, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected payload %s", raw)
	}
	if len(client.calls) != 1 || client.calls[0] != "primary-model" {
		t.Fatalf("unexpected calls %v", client.calls)
	}
}

func TestFallbackRetriesPrimaryThenSecondary(t *testing.T) {
	transient := &StatusError{Status: 503, Message: "overloaded"}
	client := &scriptedClient{results: map[int]scriptedResult{
		0: {err: transient},
		1: {err: transient},
		2: {raw: json.RawMessage(`{"ok":true}`)},
	}}

	raw, err := testPolicy().Complete(context.Background(), client, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected payload %s", raw)
	}

	want := []string{"primary-model", "primary-model", "secondary-model"}
	if len(client.calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), client.calls)
	}
	for i, model := range want {
		if client.calls[i] != model {
			t.Fatalf("call %d = %q, want %q", i, client.calls[i], model)
		}
	}
}

func TestFallbackStopsOnPermanentError(t *testing.T) {
	permanent := &StatusError{Status: 400, Message: "bad request"}
	client := &scriptedClient{results: map[int]scriptedResult{
		0: {err: permanent},
	}}

	_, err := testPolicy().Complete(context.Background(), client, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(client.calls) != 1 {
		t.Fatalf("permanent error must not retry, got %d calls", len(client.calls))
	}
}

func TestFallbackSecondaryFailureSurfaces(t *testing.T) {
	transient := &StatusError{Status: 500, Message: "boom"}
	client := &scriptedClient{results: map[int]scriptedResult{
		0: {err: transient},
		1: {err: transient},
		2: {err: errors.New("secondary down")},
	}}

	_, err := testPolicy().Complete(context.Background(), client, nil)
	if err == nil {
		t.Fatalf("expected error after exhausted policy")
	}
	if len(client.calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(client.calls))
	}
}

func TestFallbackHonorsContextDuringWait(t *testing.T) {
	transient := &StatusError{Status: 429, Message: "rate limited"}
	client := &scriptedClient{results: map[int]scriptedResult{
		0: {err: transient},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := DefaultPolicy("primary-model", "secondary-model")
	_, err := p.Complete(ctx, client, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected no calls after cancellation, got %d", len(client.calls))
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&StatusError{Status: 429}, true},
		{&StatusError{Status: 500}, true},
		{&StatusError{Status: 503}, true},
		{&StatusError{Status: 400}, false},
		{&StatusError{Status: 401}, false},
		{context.DeadlineExceeded, true},
		{errors.New("connection reset by peer"), true},
		{errors.New("invalid JSON from provider"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Fatalf("IsTransient(%v) = %t, want %t", tc.err, got, tc.want)
		}
	}
}
