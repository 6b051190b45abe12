package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pennyspath/chat-backend/pkg/domain"
	"github.com/pennyspath/chat-backend/pkg/logger"
)

// Event is one wire-level frame of a text/event-stream response. Exactly one
// variant is populated: content, finish, or error.
type Event struct {
	Content    string        `json:"content,omitempty"`
	Type       string        `json:"type,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Usage      *domain.Usage `json:"usage,omitempty"`
	Error      string        `json:"error,omitempty"`
	StatusCode int           `json:"statusCode,omitempty"`
}

const (
	EventTypeFinish = "finish"
	EventTypeError  = "error"
)

// Writer reframes completion chunks as self-delimited event frames. Every
// frame is flushed immediately; perceived latency to the first token is the
// point of the subsystem.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flushing")
	}
	return &Writer{w: w, flusher: flusher}, nil
}

// WriteHeader sends the stream headers. Any extra headers, such as rate
// limit headers, must be set on the response before calling it.
func (s *Writer) WriteHeader(statusCode int) {
	setStreamHeaders(s.w)
	s.w.WriteHeader(statusCode)
}

func (s *Writer) WriteEvent(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// Pipe drains chunks into frames until the terminal chunk, a chunk error,
// idle timeout, or ctx cancellation. Frames keep upstream order. A done ctx
// means the client disconnected: the stream closes silently and cancellation
// reaches the upstream through the shared request context. The output is
// never left open after an error.
func (s *Writer) Pipe(ctx context.Context, chunks <-chan domain.StreamChunk, idleTimeout time.Duration) {
	idle := time.NewTimer(idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-idle.C:
			s.writeTerminal(ctx, Event{Type: EventTypeError, Error: "Upstream stopped responding"})
			return

		case chunk, ok := <-chunks:
			if !ok {
				return
			}
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(idleTimeout)

			switch {
			case chunk.Err != nil:
				s.writeTerminal(ctx, Event{Type: EventTypeError, Error: chunk.Err.Error()})
				return
			case chunk.Finish != nil:
				s.writeTerminal(ctx, Event{Type: EventTypeFinish, Reason: chunk.Finish.Reason, Usage: chunk.Finish.Usage})
				return
			case chunk.Content != "":
				if err := s.WriteEvent(Event{Content: chunk.Content}); err != nil {
					slog.DebugContext(ctx, "writing content frame", logger.Err(err))
					return
				}
			}
		}
	}
}

func (s *Writer) writeTerminal(ctx context.Context, event Event) {
	if err := s.WriteEvent(event); err != nil {
		slog.DebugContext(ctx, "writing terminal frame", logger.Err(err))
	}
}

// Error writes a complete single-frame error response. It is only usable
// before streaming starts, while the status code can still change; once
// headers are out, failures degrade to in-band error frames via Pipe.
func Error(w http.ResponseWriter, message string, statusCode int) {
	setStreamHeaders(w)
	w.WriteHeader(statusCode)

	data, err := json.Marshal(Event{Type: EventTypeError, Error: message, StatusCode: statusCode})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
}
