package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

var (
	para1 = strings.Repeat("First paragraph words. ", 5)
	para2 = strings.Repeat("Second paragraph words. ", 5)
)

func TestParseArticle_ArticleRegion(t *testing.T) {
	page := `<html><head><title>  My Post  </title>` +
		`<meta property="article:published_time" content="2024-01-02T03:04:05Z"></head><body>` +
		`<nav><p>menu entry</p></nav>` +
		`<main><p>main text that should lose to article</p></main>` +
		`<article><p>` + para1 + `</p><script>var x = 1;</script><p>` + para2 + `</p></article>` +
		`<footer><p>copyright</p></footer></body></html>`

	got, err := parseArticle([]byte(page))
	require.NoError(t, err)

	assert.Equal(t, "My Post", got.Title)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.PublishDate)
	assert.Equal(t, para1+" "+para2, got.Content)
	assert.Equal(t, engine.SourceArticle, got.SourceType)
}

func TestParseArticle_RegionOrder(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"main before container", `<div class="entry-content"><p>` + para2 + `</p></div><main><p>` + para1 + `</p></main>`, para1},
		{"container class", `<div class="sidebar"><p>side</p></div><div class="post-content"><p>` + para1 + `</p></div>`, para1},
		{"body fallback", `<div><p>` + para1 + `</p></div><p>` + para2 + `</p>`, para1 + " " + para2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArticle([]byte(`<html><head><title>t</title></head><body>` + tt.body + `</body></html>`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Content)
		})
	}
}

func TestParseArticle_ShortParagraphsFallBackToBodyText(t *testing.T) {
	short := strings.Repeat("x", 40)
	page := `<html><head><title>t</title></head><body>` +
		`<header>Site header</header>` +
		`<article><p>` + short + `</p></article>` +
		`<div>Side <b>bold</b> text</div>` +
		`<script>ignored()</script></body></html>`

	got, err := parseArticle([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, short+" Side bold text", got.Content)
	assert.NotContains(t, got.Content, "Site header")
	assert.NotContains(t, got.Content, "ignored")
}

func TestParseArticle_ShortNonASCIIParagraphFallsBack(t *testing.T) {
	short := strings.Repeat("я", 60) // 60 chars, 120 bytes
	page := `<html><head><title>t</title></head><body>` +
		`<article><p>` + short + `</p></article>` +
		`<div>Ещё текст</div></body></html>`

	got, err := parseArticle([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, short+" Ещё текст", got.Content)
}

func TestParseArticle_Defaults(t *testing.T) {
	got, err := parseArticle([]byte(`<html><body><p>` + para1 + `</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Unknown Title", got.Title)
	assert.Equal(t, "Date not available", got.PublishDate)
}

func TestParseArticle_DateMetaVariants(t *testing.T) {
	for _, meta := range []string{
		`<meta name="pubdate" content="2020-05-06">`,
		`<meta name="publishdate" content="2020-05-06">`,
		`<meta name="date" content="2020-05-06">`,
	} {
		got, err := parseArticle([]byte(`<html><head>` + meta + `</head><body><p>x</p></body></html>`))
		require.NoError(t, err)
		assert.Equal(t, "2020-05-06", got.PublishDate, meta)
	}
}

func TestArticleScraper_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != engine.UserAgentChrome {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Hello</title></head><body><article><p>` + para1 + `</p></article></body></html>`))
	}))
	defer srv.Close()

	s := NewArticleScraper(engine.Config{}.WithDefaults())
	got, err := s.Fetch(context.Background(), srv.URL+"/post")
	require.NoError(t, err)

	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, para1, got.Content)
}

func TestArticleScraper_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewArticleScraper(engine.Config{}.WithDefaults())
	_, err := s.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to extract content: "), err.Error())
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, engine.KindExtractionFailed, engine.KindOf(err))
}
