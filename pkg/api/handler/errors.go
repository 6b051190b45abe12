package handler

import (
	"errors"
	"net/http"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

// statusForError maps taxonomy errors to the status and message surfaced to
// the browser. Anything unrecognized collapses to a generic 500 so raw
// internals never leak.
func statusForError(err error) (int, string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	if errors.Is(err, domain.ErrAPIKeyMissing) {
		return http.StatusInternalServerError, "OpenAI API key not configured"
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Status, upstreamErr.Message
	}

	return http.StatusInternalServerError, "Internal server error"
}
