package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

const testTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="1.2">Hello &amp;amp; welcome</text>` +
	`<text start="1.2" dur="2">to the show</text>` +
	`<text start="3.2" dur="1"> </text>` +
	`<text start="4.2" dur="1.5">it&amp;#39;s great</text>` +
	`</transcript>`

// ytFixture is a fake youtube.com + Data API. Zero-value fields give the happy path.
type ytFixture struct {
	playerJSON   string // ytInitialPlayerResponse body; "" = default with en/de tracks
	watchStatus  int
	videosBody   string
	timedStatus  int
	innertube    string // /player response
	watchHits    atomic.Int32
	innertubeHit atomic.Int32
	videosQuery  atomic.Value // string
}

func (fx *ytFixture) server(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fx.watchHits.Add(1)
		if fx.watchStatus != 0 {
			w.WriteHeader(fx.watchStatus)
			return
		}
		player := fx.playerJSON
		if player == "" {
			player = defaultPlayerJSON(srv.URL)
		}
		w.Write([]byte(`<!DOCTYPE html><html><head>` +
			`<meta property="og:site_name" content="YouTube">` +
			`<meta property="og:title" content="Gophers &amp; Friends">` +
			`<title>Gophers - YouTube</title></head><body>` +
			`<script>var ytInitialPlayerResponse = ` + player + `;var meta = {};</script>` +
			`</body></html>`))
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if fx.timedStatus != 0 {
			w.WriteHeader(fx.timedStatus)
			return
		}
		if r.URL.Query().Get("lang") != "en" {
			t.Errorf("unexpected track requested: %s", r.URL.RawQuery)
		}
		w.Write([]byte(testTimedText))
	})
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, r *http.Request) {
		fx.videosQuery.Store(r.URL.RawQuery)
		body := fx.videosBody
		if body == "" {
			body = `{"items":[{"snippet":{"publishedAt":"2023-04-05T06:07:08Z","title":"Gophers"}}]}`
		}
		w.Write([]byte(body))
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fx.innertubeHit.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("player method = %s", r.Method)
		}
		w.Write([]byte(fx.innertube))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func defaultPlayerJSON(base string) string {
	return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		`{"baseUrl":"` + base + `/timedtext?v=x&lang=de","languageCode":"de"},` +
		`{"baseUrl":"` + base + `/timedtext?v=x&lang=en","languageCode":"en","kind":"asr"}` +
		`]}},"videoDetails":{"title":"a {brace} \"quoted\" title"}}`
}

func newTestFetcher(srv *httptest.Server, apiKey string) *TranscriptFetcher {
	f := NewTranscriptFetcher(engine.Config{
		YouTubeAPIKey:  apiKey,
		YouTubeAPIBase: srv.URL + "/youtube/v3",
	}.WithDefaults())
	f.watchBase = srv.URL
	f.playerURL = srv.URL + "/youtubei/v1/player"
	return f
}

func TestTranscriptFetcher_Success(t *testing.T) {
	fx := &ytFixture{}
	srv := fx.server(t)

	got, err := newTestFetcher(srv, "secret").Fetch(context.Background(), "abc12345678")
	require.NoError(t, err)

	assert.Equal(t, "Gophers & Friends", got.Title)
	assert.Equal(t, "2023-04-05", got.PublishDate)
	assert.Equal(t, "Hello & welcome to the show it's great", got.Content)
	assert.Equal(t, engine.SourceYouTube, got.SourceType)

	query, _ := fx.videosQuery.Load().(string)
	assert.Contains(t, query, "part=snippet")
	assert.Contains(t, query, "id=abc12345678")
	assert.Contains(t, query, "key=secret")
	assert.EqualValues(t, 1, fx.watchHits.Load())
	assert.EqualValues(t, 0, fx.innertubeHit.Load())
}

func TestTranscriptFetcher_PublishDateSentinel(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		body   string
	}{
		{"no api key", "", ""},
		{"no items", "k", `{"items":[]}`},
		{"bad timestamp", "k", `{"items":[{"snippet":{"publishedAt":"April 5th"}}]}`},
		{"not json", "k", `<html>quota exceeded</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := &ytFixture{videosBody: tt.body}
			srv := fx.server(t)
			got, err := newTestFetcher(srv, tt.apiKey).Fetch(context.Background(), "abc12345678")
			require.NoError(t, err, "a missing date must not fail the fetch")
			assert.Equal(t, "Date not available.", got.PublishDate)
			assert.NotEmpty(t, got.Content)
		})
	}
}

func TestTranscriptFetcher_CaptionsDisabled(t *testing.T) {
	fx := &ytFixture{playerJSON: `{"playabilityStatus":{"status":"OK"}}`}
	srv := fx.server(t)

	_, err := newTestFetcher(srv, "k").Fetch(context.Background(), "abc12345678")
	require.Error(t, err)
	assert.Equal(t, "Transcripts are disabled for this video", err.Error())
	assert.Equal(t, engine.KindTranscriptUnavailable, engine.KindOf(err))
}

func TestTranscriptFetcher_EmptyTrackList(t *testing.T) {
	fx := &ytFixture{playerJSON: `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[]}}}`}
	srv := fx.server(t)

	_, err := newTestFetcher(srv, "k").Fetch(context.Background(), "abc12345678")
	assert.Equal(t, engine.KindTranscriptUnavailable, engine.KindOf(err))
}

func TestTranscriptFetcher_Unplayable(t *testing.T) {
	fx := &ytFixture{playerJSON: `{"playabilityStatus":{"status":"ERROR","reason":"This video is private"}}`}
	srv := fx.server(t)

	_, err := newTestFetcher(srv, "k").Fetch(context.Background(), "abc12345678")
	require.Error(t, err)
	assert.Equal(t, "Failed to extract content: video unavailable: This video is private", err.Error())
	assert.Equal(t, engine.KindExtractionFailed, engine.KindOf(err))
}

func TestTranscriptFetcher_TimedTextFailure(t *testing.T) {
	fx := &ytFixture{timedStatus: http.StatusNotFound}
	srv := fx.server(t)

	_, err := newTestFetcher(srv, "k").Fetch(context.Background(), "abc12345678")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to extract content: fetch timedtext:"), err.Error())
	assert.Contains(t, err.Error(), "status 404")
}

func TestTranscriptFetcher_PlayerFallback(t *testing.T) {
	fx := &ytFixture{watchStatus: http.StatusTooManyRequests}
	srv := fx.server(t)
	fx.innertube = defaultPlayerJSON(srv.URL)

	got, err := newTestFetcher(srv, "k").Fetch(context.Background(), "abc12345678")
	require.NoError(t, err)

	assert.Equal(t, "Hello & welcome to the show it's great", got.Content)
	assert.Equal(t, "Unknown Title", got.Title)
	assert.EqualValues(t, 1, fx.watchHits.Load(), "watch page is fetched once")
	assert.EqualValues(t, 1, fx.innertubeHit.Load(), "player is called once")
}

func TestReadOGTitle(t *testing.T) {
	tests := []struct {
		name, page, want string
	}{
		{"present", `<html><head><meta property="og:title" content=" A &quot;B&quot; "></head></html>`, `A "B"`},
		{"self closing", `<head><meta content="X" property="og:title"/></head>`, "X"},
		{"absent", `<html><head><title>t</title></head><body></body></html>`, ""},
		{"only in body", `<html><head></head><body><meta property="og:title" content="late"></body></html>`, ""},
		{"empty page", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readOGTitle([]byte(tt.page)); got != tt.want {
				t.Errorf("readOGTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"simple", `{"a":1};rest`, `{"a":1}`},
		{"nested", `{"a":{"b":{}}} trailing`, `{"a":{"b":{}}}`},
		{"braces in string", `{"t":"a } b { c"};`, `{"t":"a } b { c"}`},
		{"escaped quote", `{"t":"say \"}\" now"}x`, `{"t":"say \"}\" now"}`},
		{"escaped backslash", `{"t":"c:\\"}x`, `{"t":"c:\\"}`},
		{"unbalanced", `{"a":1`, ""},
		{"not object", `[1,2]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(extractJSON([]byte(tt.in))); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPickBestTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "de", LanguageCode: "de"},
		{BaseURL: "en-asr", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "en", LanguageCode: "en"},
	}
	assert.Equal(t, "en", pickBestTrack(tracks, []string{"en"}).BaseURL)
	assert.Equal(t, "en-asr", pickBestTrack(tracks[:2], []string{"en"}).BaseURL)
	assert.Equal(t, "de", pickBestTrack(tracks[:1], []string{"en"}).BaseURL)
}
