package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pennyspath/chat-backend/pkg/domain"
)

type fakeSpeechProvider struct {
	gotText  string
	gotVoice string
	audio    []byte
	err      error
	calls    int
}

func (f *fakeSpeechProvider) GenerateSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	f.calls++
	f.gotText = text
	f.gotVoice = voice
	return f.audio, f.err
}

func postSpeech(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/speech", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSpeechReturnsAudio(t *testing.T) {
	provider := &fakeSpeechProvider{audio: []byte("mp3-bytes")}
	h := NewSpeech(provider, &fakeLimiter{result: allowedResult()})

	rec := postSpeech(t, h, `{"text": "# Heading\n\nHello **world**"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if cl := rec.Header().Get("Content-Length"); cl != "9" {
		t.Errorf("Content-Length = %q, want 9", cl)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Errorf("body = %q, want the audio bytes", rec.Body.String())
	}
	if provider.gotVoice != "nova" {
		t.Errorf("voice = %q, want default nova", provider.gotVoice)
	}
	// Markdown must be flattened before synthesis.
	if strings.ContainsAny(provider.gotText, "#*") {
		t.Errorf("synthesized text %q still contains markdown", provider.gotText)
	}
	if !strings.Contains(provider.gotText, "Hello world") {
		t.Errorf("synthesized text = %q, want the plain words", provider.gotText)
	}
}

func TestSpeechValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty text", `{"text": ""}`, "Text is required"},
		{"too long", `{"text": "` + strings.Repeat("a", 4001) + `"}`, "Text is too long"},
		{"bad voice", `{"text": "hi", "voice": "darth-vader"}`, "Unsupported voice"},
		{"formatting only", `{"text": "***"}`, "Text has no speakable content"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			provider := &fakeSpeechProvider{}
			h := NewSpeech(provider, &fakeLimiter{result: allowedResult()})
			rec := postSpeech(t, h, test.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), test.want) {
				t.Errorf("body = %q, want %q", rec.Body.String(), test.want)
			}
			if provider.calls != 0 {
				t.Error("rejected requests must not reach the upstream")
			}
		})
	}
}

func TestSpeechLengthLimitCountsCharacters(t *testing.T) {
	provider := &fakeSpeechProvider{audio: []byte("x")}
	h := NewSpeech(provider, &fakeLimiter{result: allowedResult()})

	// 3000 characters but 9000 bytes; the ceiling is per character.
	rec := postSpeech(t, h, `{"text": "`+strings.Repeat("日", 3000)+`"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %q", rec.Code, rec.Body.String())
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestSpeechUsesVoiceProfile(t *testing.T) {
	limiter := &fakeLimiter{result: allowedResult()}
	h := NewSpeech(&fakeSpeechProvider{audio: []byte("x")}, limiter)

	postSpeech(t, h, `{"text": "hi", "voice": "nova"}`)

	if limiter.profile.Name != domain.VoiceRateLimit.Name {
		t.Errorf("profile = %q, want %q", limiter.profile.Name, domain.VoiceRateLimit.Name)
	}
}

func TestSpeechRateLimitDenial(t *testing.T) {
	provider := &fakeSpeechProvider{}
	limiter := &fakeLimiter{result: domain.RateLimitResult{
		Limit:     10,
		Remaining: 0,
		ResetTime: time.Now().Add(5 * time.Minute),
		Error:     "Rate limit exceeded",
	}}
	h := NewSpeech(provider, limiter)

	rec := postSpeech(t, h, `{"text": "hi"}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if provider.calls != 0 {
		t.Error("denied requests must not reach the upstream")
	}
}
