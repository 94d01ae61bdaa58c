package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resume-forge/internal/llm"
)

// Summarizer writes a short narrative over an identity's usage statistics.
// It runs under the same fallback policy as extraction.
type Summarizer struct {
	Client llm.Client
	Policy llm.FallbackPolicy
	Svc    *Service
}

const summarySystem = `You summarize a user's resume-generation activity. Respond with a JSON object {"summary": "..."} containing two or three plain sentences. Mention how many generations were used, which templates, and whether the account has remaining quota. No marketing language.`

// Summarize builds the stats prompt, runs the policy-managed completion and
// validates the response shape before trusting it.
func (s *Summarizer) Summarize(ctx context.Context, email string) (string, error) {
	status, err := s.Svc.CheckLimit(ctx, email)
	if err != nil {
		return "", err
	}
	records, err := s.Svc.History(ctx, email)
	if err != nil {
		return "", err
	}

	raw, err := s.Policy.Complete(ctx, s.Client, []llm.Message{
		{Role: "system", Content: summarySystem},
		{Role: "user", Content: statsPrompt(status, records)},
	})
	if err != nil {
		return "", fmt.Errorf("usage summary: %w", err)
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("usage summary decode: %w", err)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return "", fmt.Errorf("usage summary missing content")
	}
	return parsed.Summary, nil
}

func statsPrompt(status Status, records []Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "used=%d limit=%d exempt=%t\n", status.Used, status.Limit, status.Exempt)
	for _, rec := range records {
		fmt.Fprintf(&b, "generation at=%s input=%s size=%d template=%s\n",
			rec.CreatedAt.Format("2006-01-02"), rec.InputType, rec.InputSize, rec.TemplateID)
	}
	return b.String()
}
