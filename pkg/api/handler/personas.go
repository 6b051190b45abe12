package handler

import (
	"net/http"

	"github.com/pennyspath/chat-backend/pkg/api/response"
	"github.com/pennyspath/chat-backend/pkg/domain"
	"github.com/pennyspath/chat-backend/pkg/persona"
)

type personas struct {
	limiter RateLimiter
	writer  response.JSONResponseWriter
}

func NewPersonas(limiter RateLimiter) *personas {
	return &personas{limiter: limiter}
}

func (h *personas) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	result := h.limiter.Allow(ClientIdentifier(r), domain.GeneralRateLimit)
	if !result.Success {
		writeRateLimitDenied(w, &h.writer, result)
		return
	}

	setRateLimitHeaders(w, result)
	h.writer.WriteSuccessResponse(w, map[string]any{
		"personas": persona.All(),
		"models":   persona.AvailableModels,
	})
}
