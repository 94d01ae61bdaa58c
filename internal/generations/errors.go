package generations

import (
	"errors"
	"fmt"

	"resume-forge/internal/usage"
)

// ValidationError covers bad input shape: unknown template, missing payload,
// malformed email. Never retried; the message is caller-safe verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// QuotaError covers allow-list rejection and exhausted quota. Carries the
// current counters so callers can render "X of Y used".
type QuotaError struct {
	Msg    string
	Status usage.Status
}

func (e *QuotaError) Error() string { return e.Msg }

// UpstreamError covers extraction-provider failures after the retry policy
// is exhausted, or permanent provider rejections. The caller-safe message is
// distinct from the wrapped internal detail.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// AsValidation extracts a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

// AsQuota extracts a QuotaError if err is one.
func AsQuota(err error) (*QuotaError, bool) {
	var q *QuotaError
	ok := errors.As(err, &q)
	return q, ok
}

// AsUpstream extracts an UpstreamError if err is one.
func AsUpstream(err error) (*UpstreamError, bool) {
	var u *UpstreamError
	ok := errors.As(err, &u)
	return u, ok
}
