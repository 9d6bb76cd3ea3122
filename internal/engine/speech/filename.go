package speech

import (
	"strings"
	"time"
	"unicode"

	"github.com/anatolykoptev/go-kit/strutil"
	"github.com/google/uuid"
)

const (
	timestampLayout = "20060102_150405"
	slugMaxRunes    = 50
	fallbackSlug    = "audio"
)

// safeTitle keeps letters, digits, spaces, '-' and '_', then trims trailing spaces.
func safeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// timestampedName is the file name for single-chunk audio.
func timestampedName(title string, now time.Time) string {
	name := safeTitle(title)
	if name == "" {
		name = fallbackSlug
	}
	return name + "_" + now.Format(timestampLayout) + ".mp3"
}

// slugTitle lowercases the first words of title and joins alphanumeric runs with '-'.
func slugTitle(title string) string {
	clipped := strutil.TruncateAtWord(title, slugMaxRunes)

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(clipped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// randomName is the file name for joined multi-chunk audio.
func randomName(title string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return slugTitle(title) + "_" + id[:8] + ".mp3"
}
