package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// Selectors for the article heuristics, tried in the order listed.
const (
	articleDateSelector   = `meta[property="article:published_time"], meta[name="pubdate"], meta[name="publishdate"], meta[name="date"]`
	articleNoiseSelector  = "script, style, header, footer, nav, aside"
	articleContainerClass = "div.content, div.post, div.post-content, div.entry, div.entry-content, div.article-body"
)

// minArticleChars is the paragraph-text length, in characters, below which the region
// heuristic is assumed to have missed and the whole body is used instead.
const minArticleChars = 100

// ArticleScraper extracts title, publish date and body text from an HTML page.
type ArticleScraper struct {
	client *http.Client
}

// NewArticleScraper builds a scraper from config. Call cfg.WithDefaults first.
func NewArticleScraper(cfg engine.Config) *ArticleScraper {
	return &ArticleScraper{client: cfg.HTTPClient}
}

// Fetch downloads rawURL once and runs the extraction heuristics on it.
func (s *ArticleScraper) Fetch(ctx context.Context, rawURL string) (engine.ExtractedContent, error) {
	headers := stealth.ChromeHeaders()
	for k := range headers {
		if strings.EqualFold(k, "user-agent") {
			delete(headers, k)
		}
	}
	headers["User-Agent"] = engine.UserAgentChrome

	body, err := engine.FetchPage(ctx, s.client, rawURL, headers)
	if err != nil {
		engine.IncrFetchError()
		slog.Warn("article: fetch failed", slog.String("url", rawURL), slog.Any("error", err))
		return engine.ExtractedContent{}, engine.ExtractionError(err)
	}

	out, err := parseArticle(body)
	if err != nil {
		slog.Warn("article: parse failed", slog.String("url", rawURL), slog.Any("error", err))
		return engine.ExtractedContent{}, engine.ExtractionError(err)
	}
	return out, nil
}

// parseArticle applies the title, date and content-region heuristics.
func parseArticle(page []byte) (engine.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return engine.ExtractedContent{}, fmt.Errorf("parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = engine.UnknownTitle
	}

	date := engine.ArticleDateUnavailable
	if meta := doc.Find(articleDateSelector).First(); meta.Length() > 0 {
		if v, ok := meta.Attr("content"); ok {
			date = v
		}
	}

	doc.Find(articleNoiseSelector).Remove()

	region := contentRegion(doc)
	var parts []string
	region.Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})
	content := strings.Join(parts, " ")

	if utf8.RuneCountInString(content) < minArticleChars {
		content = visibleText(doc.Find("body"))
	}

	return engine.ExtractedContent{
		Title:       title,
		PublishDate: date,
		Content:     content,
		SourceType:  engine.SourceArticle,
	}, nil
}

// contentRegion picks the subtree most likely to hold the article body:
// article, then main, then a known container class, then body.
func contentRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"article", "main", articleContainerClass} {
		if r := doc.Find(sel).First(); r.Length() > 0 {
			return r
		}
	}
	return doc.Find("body").First()
}

// visibleText returns every non-blank text node under sel, trimmed and
// space-joined in document order.
func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
