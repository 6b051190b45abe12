package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/pennyspath/chat-backend/pkg/api/response"
	"github.com/pennyspath/chat-backend/pkg/domain"
	"github.com/pennyspath/chat-backend/pkg/logger"
)

// Whisper's own upload ceiling.
const maxTranscribeUploadBytes = 25 << 20

type Transcriber interface {
	TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error)
}

type transcribe struct {
	transcriber Transcriber
	limiter     RateLimiter
	writer      response.JSONResponseWriter
}

func NewTranscribe(transcriber Transcriber, limiter RateLimiter) *transcribe {
	return &transcribe{
		transcriber: transcriber,
		limiter:     limiter,
	}
}

func (h *transcribe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTranscribeUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	defer file.Close()

	result := h.limiter.Allow(ClientIdentifier(r), domain.FilesRateLimit)
	if !result.Success {
		writeRateLimitDenied(w, &h.writer, result)
		return
	}

	text, err := h.transcriber.TranscribeAudio(r.Context(), file, fileHeader.Filename)
	if err != nil {
		slog.ErrorContext(r.Context(), "transcribing audio", logger.Err(err))
		status, msg := statusForError(err)
		h.writer.WriteErrorResponse(w, status, msg)
		return
	}

	setRateLimitHeaders(w, result)
	h.writer.WriteSuccessResponse(w, map[string]string{"text": text})
}
