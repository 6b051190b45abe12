package handler

import (
	"net/http"

	"github.com/pennyspath/chat-backend/pkg/api/response"
)

type health struct {
	writer response.JSONResponseWriter
}

func NewHealth() *health {
	return &health{}
}

func (h *health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}
