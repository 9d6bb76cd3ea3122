package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// YouTube transcript fetching.
// Primary:  watch page ytInitialPlayerResponse → caption track → timedtext XML
// Fallback: ANDROID Innertube /player → caption track, when the page has no player response
// Each endpoint is called at most once per Fetch.

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// errCaptionsDisabled means the video is playable but exposes no usable captions.
var errCaptionsDisabled = errors.New("no caption tracks for video")

// errNoPlayerResponse means the watch page could not be parsed; the player fallback applies.
var errNoPlayerResponse = errors.New("ytInitialPlayerResponse not found in watch page")

// TranscriptFetcher builds ExtractedContent for a YouTube video.
type TranscriptFetcher struct {
	client    *http.Client
	apiKey    string
	apiBase   string   // YouTube Data API v3 root
	watchBase string   // https://www.youtube.com
	playerURL string   // Innertube /player endpoint
	langs     []string // caption language preference
}

// NewTranscriptFetcher builds a fetcher from config. Call cfg.WithDefaults first.
func NewTranscriptFetcher(cfg engine.Config) *TranscriptFetcher {
	return &TranscriptFetcher{
		client:    cfg.HTTPClient,
		apiKey:    cfg.YouTubeAPIKey,
		apiBase:   cfg.YouTubeAPIBase,
		watchBase: "https://www.youtube.com",
		playerURL: ytInnertubePlayerURL,
		langs:     []string{"en"},
	}
}

// Fetch resolves publish date, transcript and title for videoID.
// A missing publish date or title never fails the fetch; a missing transcript does.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) (engine.ExtractedContent, error) {
	date := f.publishDate(ctx, videoID)

	page, pageErr := f.watchPage(ctx, videoID)
	if pageErr != nil {
		slog.Warn("youtube: watch page fetch failed", slog.String("id", videoID), slog.Any("error", pageErr))
	}

	text, err := f.transcript(ctx, videoID, page, pageErr)
	if err != nil {
		engine.IncrTranscriptFailure()
		slog.Warn("youtube: transcript failed", slog.String("id", videoID), slog.Any("error", err))
		if errors.Is(err, errCaptionsDisabled) {
			return engine.ExtractedContent{}, engine.TranscriptUnavailable(err)
		}
		return engine.ExtractedContent{}, engine.ExtractionError(err)
	}

	title := readOGTitle(page) // page is nil when only the player fallback worked
	if title == "" {
		title = engine.UnknownTitle
	}

	return engine.ExtractedContent{
		Title:       title,
		PublishDate: date,
		Content:     text,
		SourceType:  engine.SourceYouTube,
	}, nil
}

func (f *TranscriptFetcher) watchPage(ctx context.Context, videoID string) ([]byte, error) {
	headers := map[string]string{
		"User-Agent":      stealth.RandomUserAgent(),
		"Accept-Language": "en-US,en;q=0.9",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}
	return engine.FetchPage(ctx, f.client, f.watchBase+"/watch?v="+url.QueryEscape(videoID), headers)
}

// transcript picks the player response from the watch page, or from /player
// when the page is unusable, then downloads the chosen caption track.
func (f *TranscriptFetcher) transcript(ctx context.Context, videoID string, page []byte, pageErr error) (string, error) {
	var pr *playerResponse
	err := pageErr
	if err == nil {
		pr, err = parsePlayerResponse(page)
	}
	if err != nil {
		slog.Info("youtube: falling back to innertube player", slog.String("id", videoID), slog.Any("reason", err))
		pr, err = postPlayer(ctx, f.client, f.playerURL, videoID)
		if err != nil {
			return "", err
		}
	}

	track, err := chooseTrack(pr, f.langs)
	if err != nil {
		return "", err
	}
	text, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty caption track", errCaptionsDisabled)
	}
	return text, nil
}

// parsePlayerResponse extracts ytInitialPlayerResponse from watch page HTML.
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := strings.Index(string(page), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errNoPlayerResponse
	}
	jsonData := extractJSON(page[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errNoPlayerResponse
	}
	var pr playerResponse
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &pr, nil
}

// chooseTrack returns the best caption track, or errCaptionsDisabled when the
// video is playable but has none. Unplayable videos report their status reason.
func chooseTrack(pr *playerResponse, langs []string) (captionTrack, error) {
	if pr.Captions == nil || len(pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		if ps := pr.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
			reason := ps.Reason
			if reason == "" {
				reason = ps.Status
			}
			return captionTrack{}, fmt.Errorf("video unavailable: %s", reason)
		}
		return captionTrack{}, errCaptionsDisabled
	}
	return pickBestTrack(pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, langs), nil
}

// pickBestTrack selects a manual track in a preferred language, then an
// auto-generated one, then the first track.
func pickBestTrack(tracks []captionTrack, langs []string) captionTrack {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	return tracks[0]
}

// fetchTimedText downloads a timedtext XML track and joins its cues, in order,
// with single spaces.
func (f *TranscriptFetcher) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	body, err := engine.FetchPage(ctx, f.client, baseURL, map[string]string{"User-Agent": engine.UserAgentChrome})
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := engine.CleanHTML(line.Text)
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// extractJSON returns the first balanced JSON object at the start of b.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
