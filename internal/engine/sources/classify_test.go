package sources

import (
	"testing"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		kind Kind
		id   string
	}{
		{"short link", "https://youtu.be/abc12345678", KindVideo, "abc12345678"},
		{"short link with time", "https://youtu.be/dQw4w9WgXcQ?t=42", KindVideo, "dQw4w9WgXcQ"},
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", KindVideo, "dQw4w9WgXcQ"},
		{"watch, v not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=5", KindVideo, "dQw4w9WgXcQ"},
		{"mobile", "https://m.youtube.com/watch?v=a-b_c1234XY", KindVideo, "a-b_c1234XY"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", KindVideo, "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", KindVideo, "dQw4w9WgXcQ"},
		{"nocookie embed", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?rel=0", KindVideo, "dQw4w9WgXcQ"},
		{"v path", "http://youtube.com/v/dQw4w9WgXcQ", KindVideo, "dQw4w9WgXcQ"},
		{"shorts", "https://youtube.com/shorts/dQw4w9WgXcQ", KindVideo, "dQw4w9WgXcQ"},
		{"watch popup", "https://www.youtube.com/watch_popup?v=abc12345678", KindVideo, "abc12345678"},
		{"attribution link", "https://www.youtube.com/attribution_link?a=x&v=abc12345678", KindVideo, "abc12345678"},
		{"v after other params", "https://youtube.com/some/path?feature=x&v=dQw4w9WgXcQ#t=1", KindVideo, "dQw4w9WgXcQ"},
		{"surrounding spaces", "  https://youtu.be/abc12345678  ", KindVideo, "abc12345678"},

		{"article", "https://go.dev/blog/loopvar-preview", KindArticle, ""},
		{"channel page", "https://www.youtube.com/@golang", KindArticle, ""},
		{"playlist", "https://www.youtube.com/playlist?list=PL123", KindArticle, ""},
		{"id too short", "https://youtu.be/abc123", KindArticle, ""},
		{"id too long", "https://youtu.be/abc1234567890", KindArticle, ""},
		{"param ending in v", "https://www.youtube.com/results?search_query=x&xv=dQw4w9WgXcQ", KindArticle, ""},
		{"lookalike host", "https://notyoutube.com/watch?v=dQw4w9WgXcQ", KindArticle, ""},
		{"garbage", "not a url at all", KindArticle, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.url)
			if err != nil {
				t.Fatalf("Classify(%q) error: %v", tt.url, err)
			}
			if got.Kind != tt.kind || got.VideoID != tt.id {
				t.Errorf("Classify(%q) = %+v, want kind=%v id=%q", tt.url, got, tt.kind, tt.id)
			}
			if got.Kind == KindVideo && len(got.VideoID) != 11 {
				t.Errorf("video id %q is not 11 chars", got.VideoID)
			}
		})
	}
}

func TestClassify_Empty(t *testing.T) {
	for _, u := range []string{"", "   "} {
		_, err := Classify(u)
		if err == nil {
			t.Fatalf("Classify(%q) expected error", u)
		}
		if err.Error() != "URL is empty" {
			t.Errorf("error = %q", err.Error())
		}
		if engine.KindOf(err) != engine.KindEmptyInput {
			t.Errorf("kind = %q", engine.KindOf(err))
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	u := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	a, _ := Classify(u)
	b, _ := Classify(u)
	if a != b {
		t.Errorf("non-deterministic: %+v vs %+v", a, b)
	}
}
