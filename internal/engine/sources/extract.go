package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// VideoFetcher and PageFetcher are the two extraction back ends.
type VideoFetcher interface {
	Fetch(ctx context.Context, videoID string) (engine.ExtractedContent, error)
}

type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (engine.ExtractedContent, error)
}

// Extractor classifies a URL and dispatches it to the matching fetcher.
type Extractor struct {
	videos   VideoFetcher
	articles PageFetcher
	cache    *engine.Cache // nil disables caching
}

// NewExtractor wires the YouTube and article fetchers. cache may be nil.
func NewExtractor(videos VideoFetcher, articles PageFetcher, cache *engine.Cache) *Extractor {
	return &Extractor{videos: videos, articles: articles, cache: cache}
}

// Extract returns the content behind rawURL. Successful results are cached;
// failures are not.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (engine.ExtractedContent, error) {
	c, err := Classify(rawURL)
	if err != nil {
		return engine.ExtractedContent{}, err
	}
	rawURL = strings.TrimSpace(rawURL)

	cacheKey := engine.CacheKey("extract", rawURL)
	if out, ok := engine.CacheLoadJSON[engine.ExtractedContent](ctx, e.cache, cacheKey); ok {
		return out, nil
	}

	engine.IncrExtraction()
	var out engine.ExtractedContent
	err = engine.TrackOperation(ctx, "extract_"+c.Kind.String(), func(ctx context.Context) error {
		var ferr error
		if c.Kind == KindVideo {
			engine.IncrVideoExtraction()
			out, ferr = e.videos.Fetch(ctx, c.VideoID)
		} else {
			engine.IncrArticleExtraction()
			out, ferr = e.articles.Fetch(ctx, rawURL)
		}
		return ferr
	})
	if err != nil {
		return engine.ExtractedContent{}, err
	}

	slog.Info("extracted content",
		slog.String("url", rawURL),
		slog.String("source", out.SourceType),
		slog.Int("chars", len(out.Content)))
	engine.CacheStoreJSON(ctx, e.cache, cacheKey, out)
	return out, nil
}
