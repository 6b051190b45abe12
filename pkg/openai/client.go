package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

const (
	realtimeSessionsURL = "https://api.openai.com/v1/realtime/sessions"

	// Input ceiling for speech synthesis, enforced before any upstream call.
	maxSpeechInputLength = 4000
)

// SpeechVoices is the fixed set of voices accepted by GenerateSpeech.
var SpeechVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

const DefaultVoice = "nova"

type client struct {
	api           *openai.Client
	token         string
	hc            *retryablehttp.Client
	realtimeModel string
}

// NewClient builds the upstream client. An empty token is allowed at
// construction time; calls fail with domain.ErrAPIKeyMissing instead.
func NewClient(token, realtimeModel string) *client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 2
	hc.Logger = nil

	return &client{
		api:           openai.NewClient(token),
		token:         token,
		hc:            hc,
		realtimeModel: realtimeModel,
	}
}

// StreamChatCompletion opens a streaming completion and returns a lazy,
// forward-only channel of chunks. The terminal element is a finish chunk
// carrying the provider's stop reason and usage; errors while draining
// arrive as an error chunk. The channel closes after either. Cancelling ctx
// releases the upstream connection.
func (c *client) StreamChatCompletion(ctx context.Context, req domain.ChatRequest) (<-chan domain.StreamChunk, error) {
	if c.token == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:         req.Model,
		Messages:      buildMessages(req),
		Temperature:   req.Temperature,
		MaxTokens:     req.MaxTokens,
		Stream:        true,
		StreamOptions: &openai.StreamOptions{IncludeUsage: true},
	})
	if err != nil {
		return nil, normalizeError(err)
	}

	ch := make(chan domain.StreamChunk)
	go func() {
		defer close(ch)
		defer stream.Close()

		finish := domain.FinishInfo{Reason: "stop"}
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				send(ctx, ch, domain.StreamChunk{Finish: &finish})
				return
			}
			if err != nil {
				send(ctx, ch, domain.StreamChunk{Err: normalizeError(err)})
				return
			}

			if resp.Usage != nil {
				finish.Usage = &domain.Usage{
					PromptTokens:     resp.Usage.PromptTokens,
					CompletionTokens: resp.Usage.CompletionTokens,
					TotalTokens:      resp.Usage.TotalTokens,
				}
			}
			if len(resp.Choices) == 0 {
				continue
			}

			choice := resp.Choices[0]
			if choice.Delta.Content != "" {
				if !send(ctx, ch, domain.StreamChunk{Content: choice.Delta.Content}) {
					return
				}
			}
			if choice.FinishReason != "" {
				finish.Reason = string(choice.FinishReason)
			}
		}
	}()

	return ch, nil
}

func send(ctx context.Context, ch chan<- domain.StreamChunk, chunk domain.StreamChunk) bool {
	select {
	case ch <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// buildMessages orders the upstream message list: optional system prompt,
// optional attachment context, then the conversation.
func buildMessages(req domain.ChatRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+2)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	if req.AttachmentText != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(
				"Context from attached file:\n\n%s\n\nPlease reference this context when relevant to the user's questions.",
				req.AttachmentText,
			),
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return messages
}

// GenerateSpeech synthesizes MP3 audio for the given text and voice.
func (c *client) GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if c.token == "" {
		return nil, domain.ErrAPIKeyMissing
	}
	if utf8.RuneCountInString(text) > maxSpeechInputLength {
		return nil, domain.NewValidationError("text is too long (max %d characters)", maxSpeechInputLength)
	}
	if !lo.Contains(SpeechVoices, voice) {
		return nil, domain.NewValidationError("unsupported voice %q", voice)
	}

	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, normalizeError(err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading speech response: %w", err)
	}
	return audio, nil
}

// TranscribeAudio runs Whisper transcription over an uploaded audio file.
// The filename only informs format detection.
func (c *client) TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if c.token == "" {
		return "", domain.ErrAPIKeyMissing
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", normalizeError(err)
	}
	return resp.Text, nil
}

type realtimeSessionRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
}

type realtimeSessionResponse struct {
	ClientSecret struct {
		Value string `json:"value"`
	} `json:"client_secret"`
	Token string `json:"token"`
}

// CreateRealtimeToken requests a short-lived credential for a realtime voice
// session. The SDK has no realtime-sessions endpoint, so this goes over raw
// HTTP. The returned token is session-scoped; callers must not log or
// persist it.
func (c *client) CreateRealtimeToken(ctx context.Context) (string, error) {
	if c.token == "" {
		return "", domain.ErrAPIKeyMissing
	}

	body, err := json.Marshal(realtimeSessionRequest{Model: c.realtimeModel, Voice: DefaultVoice})
	if err != nil {
		return "", fmt.Errorf("marshaling realtime session request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, realtimeSessionsURL, body)
	if err != nil {
		return "", fmt.Errorf("creating realtime session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", normalizeError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", errorFromStatus(resp.StatusCode, fmt.Sprintf("creating realtime session: %s", strings.TrimSpace(string(respBody))))
	}

	var session realtimeSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("decoding realtime session response: %w", err)
	}

	if session.ClientSecret.Value != "" {
		return session.ClientSecret.Value, nil
	}
	if session.Token != "" {
		return session.Token, nil
	}
	return "", errors.New("realtime session response has no client secret")
}
