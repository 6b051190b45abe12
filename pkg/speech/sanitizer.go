package speech

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`[ \t]+`)
)

// Speakable flattens assistant markdown into plain text suitable as
// text-to-speech input. Rendering through blackfriday first collapses
// emphasis, lists and links the same way a browser would before the voice
// UI reads them aloud.
func Speakable(markdown string) string {
	rendered := blackfriday.MarkdownCommon([]byte(markdown))

	text := tagPattern.ReplaceAllString(string(rendered), " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}
