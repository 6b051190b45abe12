package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pennyspath/chat-backend/pkg/logger"
)

type JSONResponseWriter struct{}

func (j *JSONResponseWriter) WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding json response", logger.Err(err))
	}
}

func (j *JSONResponseWriter) WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	j.WriteJSONResponse(w, http.StatusOK, data)
}

func (j *JSONResponseWriter) WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	j.WriteJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

type ErrorResponse struct {
	Error string `json:"error"`
}
