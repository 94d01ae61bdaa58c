package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resume-forge/internal/llm"
	"resume-forge/resume/content"
)

// MaxPDFBytes is the decoded-payload ceiling. Larger inputs are rejected
// before any model call to bound cost and latency.
const MaxPDFBytes = 5 << 20

// Input is one extraction request. Exactly one of Text or PDF is expected;
// when both are set the text wins. Identity backfills a missing email in the
// extracted content.
type Input struct {
	Text     string
	PDF      []byte
	Identity string
}

// Adapter turns unstructured input into the flat resume content shape via
// the LLM, under the shared fallback policy.
type Adapter struct {
	Client llm.Client
	Policy llm.FallbackPolicy
}

// NewAdapter constructs an Adapter.
func NewAdapter(client llm.Client, policy llm.FallbackPolicy) *Adapter {
	return &Adapter{Client: client, Policy: policy}
}

// Extract runs the full adapter contract: size validation, local PDF text
// extraction, the policy-managed model call, and structural validation of
// the response. Callers distinguish retryable failures with IsPermanent.
func (a *Adapter) Extract(ctx context.Context, in Input) (content.Resume, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		if len(in.PDF) == 0 {
			return content.Resume{}, ErrEmptyInput
		}
		if int64(len(in.PDF)) > MaxPDFBytes {
			return content.Resume{}, ErrPayloadTooLarge
		}
		extracted, err := pdfText(in.PDF)
		if err != nil {
			return content.Resume{}, err
		}
		text = strings.TrimSpace(extracted)
		if text == "" {
			return content.Resume{}, &PermanentError{Reason: "pdf contains no extractable text"}
		}
	}

	raw, err := a.Policy.Complete(ctx, a.Client, buildMessages(text))
	if err != nil {
		return content.Resume{}, fmt.Errorf("extract resume content: %w", err)
	}

	if err := validateShape(raw); err != nil {
		return content.Resume{}, err
	}

	var res content.Resume
	if err := json.Unmarshal(raw, &res); err != nil {
		return content.Resume{}, &PermanentError{Reason: "model output decode", Err: err}
	}

	if strings.TrimSpace(res.PersonalInfo.Email) == "" {
		res.PersonalInfo.Email = strings.TrimSpace(in.Identity)
	}
	return res, nil
}
