package extraction

import (
	"errors"
	"fmt"

	"resume-forge/internal/llm"
)

// ErrPayloadTooLarge rejects a decoded PDF payload above the ceiling before
// anything is sent to the model.
var ErrPayloadTooLarge = errors.New("pdf payload exceeds size limit")

// ErrEmptyInput means neither text nor a PDF payload was provided.
var ErrEmptyInput = errors.New("no input text or pdf payload")

// PermanentError marks failures that must not be retried: unparseable input,
// model output that fails structural validation, and the like.
type PermanentError struct {
	Reason string
	Err    error
}

func (e *PermanentError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// IsPermanent reports whether err should be surfaced to the caller without
// retry or model fallback.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	var perm *PermanentError
	if errors.As(err, &perm) {
		return true
	}
	if errors.Is(err, ErrPayloadTooLarge) || errors.Is(err, ErrEmptyInput) {
		return true
	}
	return !llm.IsTransient(err)
}
