package domain

import (
	"errors"
	"fmt"
)

// ErrAPIKeyMissing means the upstream credential was absent at call time.
// Handlers map it to a 500; it never crashes the process.
var ErrAPIKeyMissing = errors.New("OpenAI API key is not configured")

type UpstreamErrorKind string

const (
	UpstreamAuthConfig  UpstreamErrorKind = "auth_config"
	UpstreamRateLimited UpstreamErrorKind = "rate_limited"
	UpstreamUnavailable UpstreamErrorKind = "unavailable"
	UpstreamUnknown     UpstreamErrorKind = "unknown"
)

// UpstreamError is a provider failure normalized into the taxonomy. Status
// is the HTTP status suggested for re-surfacing to the browser; Message is
// safe to show verbatim.
type UpstreamError struct {
	Kind    UpstreamErrorKind
	Message string
	Status  int
}

func (e *UpstreamError) Error() string { return e.Message }

// ValidationError rejects a request at the boundary, before any rate-limit
// consumption or upstream call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
