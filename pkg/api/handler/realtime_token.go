package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pennyspath/chat-backend/pkg/api/response"
	"github.com/pennyspath/chat-backend/pkg/domain"
	"github.com/pennyspath/chat-backend/pkg/logger"
)

const realtimeTokenTTL = 15 * time.Minute

type RealtimeTokenProvider interface {
	CreateRealtimeToken(ctx context.Context) (string, error)
}

type realtimeToken struct {
	provider RealtimeTokenProvider
	limiter  RateLimiter
	model    string
	writer   response.JSONResponseWriter
}

func NewRealtimeToken(provider RealtimeTokenProvider, limiter RateLimiter, model string) *realtimeToken {
	return &realtimeToken{
		provider: provider,
		limiter:  limiter,
		model:    model,
	}
}

// ServeHTTP issues an ephemeral realtime-session credential. The token is
// session-scoped and never logged.
func (h *realtimeToken) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	result := h.limiter.Allow(ClientIdentifier(r), domain.VoiceRateLimit)
	if !result.Success {
		writeRateLimitDenied(w, &h.writer, result)
		return
	}

	token, err := h.provider.CreateRealtimeToken(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "creating realtime token", logger.Err(err))
		status, msg := statusForError(err)
		h.writer.WriteErrorResponse(w, status, msg)
		return
	}

	setRateLimitHeaders(w, result)
	h.writer.WriteSuccessResponse(w, map[string]any{
		"token":     token,
		"model":     h.model,
		"expiresAt": time.Now().Add(realtimeTokenTTL).UnixMilli(),
	})
}
