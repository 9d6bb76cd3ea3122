package sources

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// Kind is the content type a URL resolves to.
type Kind int

const (
	KindArticle Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return engine.SourceYouTube
	}
	return engine.SourceArticle
}

// Classification is the result of Classify. VideoID is set only for KindVideo.
type Classification struct {
	Kind    Kind
	VideoID string
}

// videoURLRE matches youtu.be short links, the embed/v/shorts/live path forms
// and any path carrying a v= query parameter (watch, watch_popup,
// attribution_link) on youtube.com and youtube-nocookie.com. It captures the
// 11-char id.
var videoURLRE = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?(?:` +
	`youtu\.be/` +
	`|(?:youtube\.com|youtube-nocookie\.com)/(?:embed/|v/|shorts/|live/|[^?#]*\?(?:[^#]*&)?v=)` +
	`)([a-z0-9_-]{11})(?:[?&#/]|$)`)

// Classify decides whether rawURL is a video or an article.
// The video pattern is checked first; everything else, including video-site
// URLs with an unrecognised path, is an article.
func Classify(rawURL string) (Classification, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return Classification{}, engine.NewError(engine.KindEmptyInput, engine.MsgEmptyURL)
	}
	if m := videoURLRE.FindStringSubmatch(u); len(m) == 2 {
		return Classification{Kind: KindVideo, VideoID: m[1]}, nil
	}
	return Classification{Kind: KindArticle}, nil
}
