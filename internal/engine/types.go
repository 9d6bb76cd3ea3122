package engine

// --- Pipeline values ---

// Source type tags carried on ExtractedContent.
const (
	SourceYouTube = "youtube"
	SourceArticle = "article"
)

// Publish-date sentinels used when a source exposes no usable date.
// The video variant keeps its trailing period.
const (
	VideoDateUnavailable   = "Date not available."
	ArticleDateUnavailable = "Date not available"
	UnknownTitle           = "Unknown Title"
)

// ExtractedContent is the result of one extraction attempt.
type ExtractedContent struct {
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	Content     string `json:"content"`
	SourceType  string `json:"source_type"` // "youtube" or "article"
}

// SummaryRequest is the input to Summarizer.Summarize.
// Mode is kept as the raw string so an unknown value can be reported verbatim.
type SummaryRequest struct {
	Content     string
	Title       string
	PublishDate string
	Mode        string
}

// SummaryResult is a model-generated summary.
type SummaryResult struct {
	Summary       string  `json:"summary"`
	SummaryType   string  `json:"summary_type"`
	PublishedDate *string `json:"published_date"` // model-asserted; nil when the model returned null
}

// DisplayDate prefers the model-asserted date and falls back to the extracted one.
func (r SummaryResult) DisplayDate(extracted string) string {
	if r.PublishedDate != nil && *r.PublishedDate != "" {
		return *r.PublishedDate
	}
	return extracted
}
