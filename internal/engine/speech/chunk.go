package speech

import (
	"strings"
	"unicode/utf8"
)

// ChunkText splits text into pieces of at most maxChars characters (runes)
// for the speech API. Text that already fits is returned as is. Otherwise
// newlines become spaces, the text is cut at ". " and sentences are packed
// greedily, each ending in a period. A single sentence longer than maxChars is kept whole.
func ChunkText(text string, maxChars int) []string {
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var cur string
	var curLen int
	for _, s := range strings.Split(strings.ReplaceAll(text, "\n", " "), ". ") {
		if s != "" && !strings.HasSuffix(s, ".") {
			s += "."
		}
		n := utf8.RuneCountInString(s)
		switch {
		case curLen+n+1 > maxChars:
			if cur != "" {
				chunks = append(chunks, cur)
			}
			cur, curLen = s, n
		case cur != "":
			cur += " " + s
			curLen += n + 1
		default:
			cur, curLen = s, n
		}
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}
