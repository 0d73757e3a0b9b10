// Package segment breaks paragraph text into sentence-sized chunks, one per
// bullet on a slide.
package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Segment normalizes whitespace in text and splits it after every run of
// sentence-terminal punctuation. There is no abbreviation detection: any
// terminal mark ends a chunk. Whitespace-only input yields nil.
func Segment(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && isTerminal(runes[end]) {
			end++
		}
		for end < len(runes) && isCloser(runes[end]) {
			end++
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			chunks = append(chunks, s)
		}
		start = end
		i = end - 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

// Normalize composes text to NFC and collapses every whitespace run,
// line breaks included, to a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isCloser matches quotes and brackets that belong to the sentence they
// close.
func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}
