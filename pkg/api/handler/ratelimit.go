package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pennyspath/chat-backend/pkg/api/response"
	"github.com/pennyspath/chat-backend/pkg/domain"
)

// RateLimiter is the slice of the limiter the handlers need.
type RateLimiter interface {
	Allow(identifier string, profile domain.RateLimitProfile) domain.RateLimitResult
}

const fallbackClientID = "unknown-client"

// ClientIdentifier derives a stable per-client key from proxy headers.
// Clients whose proxies set none of them share the fallback bucket.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if clientIP := r.Header.Get("X-Client-IP"); clientIP != "" {
		return clientIP
	}
	return fallbackClientID
}

func setRateLimitHeaders(w http.ResponseWriter, result domain.RateLimitResult) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime.UnixMilli(), 10))
	if result.Error != "" {
		h.Set("X-RateLimit-Error", result.Error)
	}
}

func writeRateLimitDenied(w http.ResponseWriter, writer *response.JSONResponseWriter, result domain.RateLimitResult) {
	setRateLimitHeaders(w, result)
	writer.WriteJSONResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"resetTime": result.ResetTime.UnixMilli(),
	})
}
