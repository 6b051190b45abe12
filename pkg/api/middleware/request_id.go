package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pennyspath/chat-backend/pkg/logger"
)

// RequestID tags each request with a correlation ID that rides the context
// into every log line and is echoed back to the caller.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
