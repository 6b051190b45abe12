package openai

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

// normalizeError maps provider failures into the error taxonomy so no raw
// provider error ever reaches a handler unshaped.
func normalizeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return errorFromStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return errorFromStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}

	return &domain.UpstreamError{
		Kind:    domain.UpstreamUnknown,
		Message: err.Error(),
		Status:  http.StatusInternalServerError,
	}
}

func errorFromStatus(status int, message string) *domain.UpstreamError {
	switch {
	case status == http.StatusTooManyRequests:
		return &domain.UpstreamError{
			Kind:    domain.UpstreamRateLimited,
			Message: "Rate limit exceeded. Please try again later.",
			Status:  http.StatusTooManyRequests,
		}
	case status == http.StatusUnauthorized:
		return &domain.UpstreamError{
			Kind:    domain.UpstreamAuthConfig,
			Message: "Invalid API key configuration.",
			Status:  http.StatusUnauthorized,
		}
	case status >= http.StatusInternalServerError:
		return &domain.UpstreamError{
			Kind:    domain.UpstreamUnavailable,
			Message: "OpenAI service is temporarily unavailable.",
			Status:  http.StatusBadGateway,
		}
	default:
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if message == "" {
			message = "An unexpected error occurred."
		}
		return &domain.UpstreamError{Kind: domain.UpstreamUnknown, Message: message, Status: status}
	}
}
