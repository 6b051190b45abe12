package speech

import "testing"

func TestSpeakable(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"plain text passes through", "Hello there", "Hello there"},
		{"emphasis markers are dropped", "**Great** work on *that*", "Great work on that"},
		{"inline code keeps its content", "run `go test` now", "run go test now"},
		{"headers keep their text", "# First steps", "First steps"},
		{"entities are unescaped", "Q&A time", "Q&A time"},
		{"markdown-only input collapses to nothing", "***", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Speakable(test.markdown); got != test.want {
				t.Errorf("Speakable(%q) = %q, want %q", test.markdown, got, test.want)
			}
		})
	}
}
