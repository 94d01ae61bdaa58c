package usage

import "time"

// FreeLimit is the number of generations a non-exempt identity gets.
const FreeLimit = 2

// InputType tags what kind of payload produced a generation.
const (
	InputTypeText = "text"
	InputTypePDF  = "pdf"
)

// Record is one append-only ledger row. Rows are created exactly once per
// successful generation by a non-exempt identity and never mutated; the row
// count per email IS the quota consumption, so there is no separate counter
// to drift out of sync.
type Record struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	InputType  string    `json:"inputType"`
	InputSize  int       `json:"inputSize"`
	TemplateID string    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Status is the quota snapshot returned to callers.
type Status struct {
	CanGenerate bool `json:"canGenerate"`
	Used        int  `json:"used"`
	Limit       int  `json:"limit"`
	Exempt      bool `json:"exempt"`
}

// PlanStatus classifies an identity's subscription for quota purposes.
type PlanStatus struct {
	Exempt bool   `json:"exempt"`
	PlanID string `json:"planId,omitempty"`
	Status string `json:"status,omitempty"`
}
