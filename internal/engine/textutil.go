package engine

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "GoDigest/1.0"
	UserAgentChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// TruncationNotice is appended to content cut down by TruncateContent.
const TruncationNotice = "\n\n[Note: Content was truncated due to length limitations]"

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags, unescapes entities and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagRe.ReplaceAllString(s, "")))
}

// EstimateTokens approximates the token count at 4 characters per token.
// Characters are runes, not bytes.
func EstimateTokens(s string) float64 {
	return float64(utf8.RuneCountInString(s)) / 4
}

// TruncateContent bounds text to roughly maxTokens tokens.
// Text within budget is returned unchanged. Otherwise the word sequence is cut
// to the budget's share of words and TruncationNotice is appended; the result
// itself fits the budget, so truncating it again is a no-op.
func TruncateContent(text string, maxTokens int) string {
	estimate := EstimateTokens(text)
	if estimate <= float64(maxTokens) {
		return text
	}
	if strings.HasSuffix(text, TruncationNotice) {
		return text
	}

	words := strings.Fields(text)
	keep := int(float64(len(words)) * float64(maxTokens) / estimate)
	if keep > len(words) {
		keep = len(words)
	}

	budget := maxTokens * 4
	notice := utf8.RuneCountInString(TruncationNotice)
	size := joinedLen(words[:keep])
	for keep > 0 && size+notice > budget {
		size -= utf8.RuneCountInString(words[keep-1])
		if keep > 1 {
			size-- // separator
		}
		keep--
	}
	return strings.Join(words[:keep], " ") + TruncationNotice
}

// joinedLen is the rune count of words joined by single spaces.
func joinedLen(words []string) int {
	if len(words) == 0 {
		return 0
	}
	n := len(words) - 1
	for _, w := range words {
		n += utf8.RuneCountInString(w)
	}
	return n
}
