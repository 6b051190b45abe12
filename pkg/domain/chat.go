package domain

import "time"

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// MessageRoles is the closed set of roles accepted at the request boundary.
var MessageRoles = []string{MessageRoleUser, MessageRoleAssistant, MessageRoleSystem}

type ChatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	ID        string     `json:"id,omitempty"`
}

// ChatRequest is a fully resolved completion request: persona defaults and
// user settings are already merged before it reaches the upstream client.
type ChatRequest struct {
	Messages       []ChatMessage
	Model          string
	Temperature    float32
	MaxTokens      int
	SystemPrompt   string
	AttachmentText string
}
