package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/pennyspath/chat-backend/pkg/api/response"
	"github.com/pennyspath/chat-backend/pkg/api/sse"
	"github.com/pennyspath/chat-backend/pkg/domain"
	"github.com/pennyspath/chat-backend/pkg/logger"
	"github.com/pennyspath/chat-backend/pkg/persona"
)

type ChatProvider interface {
	StreamChatCompletion(ctx context.Context, req domain.ChatRequest) (<-chan domain.StreamChunk, error)
}

type chat struct {
	provider    ChatProvider
	limiter     RateLimiter
	idleTimeout time.Duration
	writer      response.JSONResponseWriter
}

func NewChat(provider ChatProvider, limiter RateLimiter, idleTimeout time.Duration) *chat {
	return &chat{
		provider:    provider,
		limiter:     limiter,
		idleTimeout: idleTimeout,
	}
}

type chatRequest struct {
	Messages       []domain.ChatMessage    `json:"messages"`
	PersonaID      string                  `json:"personaId"`
	Settings       *domain.PersonaSettings `json:"settings,omitempty"`
	AttachmentText *string                 `json:"attachmentText,omitempty"`
}

// ServeHTTP walks the request through validating, rate limiting, persona
// resolution and streaming. Validation failures respond before any bucket
// consume; once headers are out, failures degrade to in-band error frames.
func (h *chat) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sse.Error(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	if msg, ok := validateChatRequest(&req); !ok {
		sse.Error(w, msg, http.StatusBadRequest)
		return
	}

	result := h.limiter.Allow(ClientIdentifier(r), domain.ChatRateLimit)
	if !result.Success {
		writeRateLimitDenied(w, &h.writer, result)
		return
	}

	p, err := persona.Resolve(req.PersonaID)
	if err != nil {
		sse.Error(w, "Invalid persona ID", http.StatusBadRequest)
		return
	}

	effective := persona.Merge(p, req.Settings)
	chatReq := domain.ChatRequest{
		Messages:       req.Messages,
		Model:          effective.Model,
		Temperature:    effective.Temperature,
		MaxTokens:      effective.MaxTokens,
		SystemPrompt:   effective.SystemPrompt,
		AttachmentText: lo.FromPtr(req.AttachmentText),
	}

	chunks, err := h.provider.StreamChatCompletion(r.Context(), chatReq)
	if err != nil {
		slog.ErrorContext(r.Context(), "opening completion stream", logger.Err(err))
		status, msg := statusForError(err)
		sse.Error(w, msg, status)
		return
	}

	stream, err := sse.NewWriter(w)
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	setRateLimitHeaders(w, result)
	stream.WriteHeader(http.StatusOK)
	stream.Pipe(r.Context(), chunks, h.idleTimeout)
}

func validateChatRequest(req *chatRequest) (string, bool) {
	if req.Messages == nil {
		return "Messages array is required", false
	}
	if req.PersonaID == "" {
		return "Persona ID is required", false
	}
	for _, m := range req.Messages {
		if m.Role == "" || m.Content == "" {
			return "Each message must have role and content", false
		}
		if !lo.Contains(domain.MessageRoles, m.Role) {
			return "Invalid message role", false
		}
	}
	return "", true
}
