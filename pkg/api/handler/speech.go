package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/pennyspath/chat-backend/pkg/api/response"
	"github.com/pennyspath/chat-backend/pkg/domain"
	"github.com/pennyspath/chat-backend/pkg/logger"
	chatopenai "github.com/pennyspath/chat-backend/pkg/openai"
	"github.com/pennyspath/chat-backend/pkg/speech"
)

const maxSpeechTextLength = 4000

type SpeechProvider interface {
	GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error)
}

type speechHandler struct {
	provider SpeechProvider
	limiter  RateLimiter
	writer   response.JSONResponseWriter
}

func NewSpeech(provider SpeechProvider, limiter RateLimiter) *speechHandler {
	return &speechHandler{
		provider: provider,
		limiter:  limiter,
	}
}

type speechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

func (h *speechHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Text == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}
	if utf8.RuneCountInString(req.Text) > maxSpeechTextLength {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest,
			"Text is too long (max "+strconv.Itoa(maxSpeechTextLength)+" characters)")
		return
	}
	voice := req.Voice
	if voice == "" {
		voice = chatopenai.DefaultVoice
	}
	if !lo.Contains(chatopenai.SpeechVoices, voice) {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Unsupported voice")
		return
	}

	result := h.limiter.Allow(ClientIdentifier(r), domain.VoiceRateLimit)
	if !result.Success {
		writeRateLimitDenied(w, &h.writer, result)
		return
	}

	// Assistant messages arrive as markdown; flatten them so the voice
	// doesn't read formatting characters aloud.
	text := speech.Speakable(req.Text)
	if text == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Text has no speakable content")
		return
	}

	audio, err := h.provider.GenerateSpeech(r.Context(), text, voice)
	if err != nil {
		slog.ErrorContext(r.Context(), "generating speech", logger.Err(err))
		status, msg := statusForError(err)
		h.writer.WriteErrorResponse(w, status, msg)
		return
	}

	setRateLimitHeaders(w, result)
	header := w.Header()
	header.Set("Content-Type", "audio/mpeg")
	header.Set("Content-Length", strconv.Itoa(len(audio)))
	header.Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		slog.DebugContext(r.Context(), "writing audio response", logger.Err(err))
	}
}
