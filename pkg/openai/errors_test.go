package openai

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   domain.UpstreamErrorKind
		wantStatus int
	}{
		{
			name:       "provider 429 maps to rate limited",
			err:        &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"},
			wantKind:   domain.UpstreamRateLimited,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "provider 401 maps to auth config",
			err:        &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "bad key"},
			wantKind:   domain.UpstreamAuthConfig,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "provider 503 maps to unavailable",
			err:        &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable, Message: "down"},
			wantKind:   domain.UpstreamUnavailable,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "other provider status stays unknown with its status",
			err:        &openai.APIError{HTTPStatusCode: http.StatusTeapot, Message: "teapot"},
			wantKind:   domain.UpstreamUnknown,
			wantStatus: http.StatusTeapot,
		},
		{
			name:       "plain error becomes unknown 500",
			err:        errors.New("connection reset"),
			wantKind:   domain.UpstreamUnknown,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := normalizeError(test.err)

			var upstreamErr *domain.UpstreamError
			if !errors.As(got, &upstreamErr) {
				t.Fatalf("expected *domain.UpstreamError, got %T", got)
			}
			if upstreamErr.Kind != test.wantKind {
				t.Errorf("kind = %q, want %q", upstreamErr.Kind, test.wantKind)
			}
			if upstreamErr.Status != test.wantStatus {
				t.Errorf("status = %d, want %d", upstreamErr.Status, test.wantStatus)
			}
			if upstreamErr.Message == "" {
				t.Error("message must be displayable, got empty string")
			}
		})
	}
}

func TestBuildMessagesOrder(t *testing.T) {
	req := domain.ChatRequest{
		Messages: []domain.ChatMessage{
			{Role: domain.MessageRoleUser, Content: "hi"},
			{Role: domain.MessageRoleAssistant, Content: "hello"},
		},
		SystemPrompt:   "be kind",
		AttachmentText: "resume text",
	}

	messages := buildMessages(req)
	if len(messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(messages))
	}
	if messages[0].Role != "system" || messages[0].Content != "be kind" {
		t.Errorf("first message should be the system prompt, got %+v", messages[0])
	}
	if messages[1].Role != "system" {
		t.Errorf("second message should be the attachment context, got %+v", messages[1])
	}
	if messages[2].Content != "hi" || messages[3].Content != "hello" {
		t.Error("conversation messages must keep their order")
	}
}

func TestBuildMessagesWithoutOptionalContext(t *testing.T) {
	req := domain.ChatRequest{
		Messages: []domain.ChatMessage{{Role: domain.MessageRoleUser, Content: "hi"}},
	}

	messages := buildMessages(req)
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
}
