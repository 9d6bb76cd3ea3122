package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// --- YouTube Data API v3 types ---

type ytVideosResp struct {
	Items []struct {
		Snippet struct {
			PublishedAt string `json:"publishedAt"`
			Title       string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

const ytPublishedAtLayout = "2006-01-02T15:04:05Z"

// publishDate looks up the video's publish date via the Data API and formats
// it as YYYY-MM-DD. Any failure yields engine.VideoDateUnavailable.
func (f *TranscriptFetcher) publishDate(ctx context.Context, videoID string) string {
	date, err := f.fetchPublishDate(ctx, videoID)
	if err != nil {
		slog.Warn("youtube: publish date unavailable", slog.String("id", videoID), slog.Any("error", err))
		return engine.VideoDateUnavailable
	}
	return date
}

func (f *TranscriptFetcher) fetchPublishDate(ctx context.Context, videoID string) (string, error) {
	if f.apiKey == "" {
		return "", errors.New("no YouTube API key configured")
	}
	params := url.Values{
		"part": {"snippet"},
		"id":   {videoID},
		"key":  {f.apiKey},
	}
	body, err := engine.FetchPage(ctx, f.client, f.apiBase+"/videos?"+params.Encode(), map[string]string{
		"Accept":     "application/json",
		"User-Agent": engine.UserAgentBot,
	})
	if err != nil {
		return "", err
	}

	var resp ytVideosResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode videos response: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", errors.New("video not found")
	}
	t, err := time.Parse(ytPublishedAtLayout, resp.Items[0].Snippet.PublishedAt)
	if err != nil {
		return "", fmt.Errorf("parse publishedAt: %w", err)
	}
	return t.Format("2006-01-02"), nil
}

// readOGTitle returns the content of the first <meta property="og:title">.
// The tokenizer stops at </head> or <body>, so large watch pages are not parsed in full.
func readOGTitle(page []byte) string {
	if len(page) == 0 {
		return ""
	}
	z := html.NewTokenizer(bytes.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "head" {
				return ""
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) == "body" {
				return ""
			}
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var property, content string
			for {
				key, val, more := z.TagAttr()
				switch string(key) {
				case "property":
					property = string(val)
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}
			if strings.EqualFold(property, "og:title") {
				return strings.TrimSpace(content)
			}
		}
	}
}
