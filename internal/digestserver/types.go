package digestserver

import "github.com/anatolykoptev/go_digest/internal/engine/speech"

// --- extract_content ---

type ExtractInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL or web article URL"`
}

type ExtractOutput struct {
	Title       string `json:"title,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
	Content     string `json:"content,omitempty"`
	SourceType  string `json:"source_type,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
}

// --- generate_summary ---

type SummaryInput struct {
	Content     string `json:"content" jsonschema:"Text to summarize (transcript or article body)"`
	Title       string `json:"title,omitempty" jsonschema:"Title of the source"`
	PublishDate string `json:"publish_date,omitempty" jsonschema:"Publish date as extracted, or a not-available sentinel"`
	Mode        string `json:"mode,omitempty" jsonschema:"Summary mode: quick (default), deep_dive, key_quotes, key_principles"`
}

type SummaryOutput struct {
	Summary       string  `json:"summary,omitempty"`
	SummaryType   string  `json:"summary_type,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	Error         string  `json:"error,omitempty"`
	ErrorKind     string  `json:"error_kind,omitempty"`
}

// --- generate_audio_summary ---

type AudioSummaryInput struct {
	Summary string `json:"summary" jsonschema:"Summary text to rewrite for listening"`
	Title   string `json:"title" jsonschema:"Title of the source"`
	Mode    string `json:"mode,omitempty" jsonschema:"Summary mode the text was produced with (default: quick)"`
}

type AudioSummaryOutput struct {
	Text     string `json:"text"`
	Narrated bool   `json:"narrated" jsonschema:"false when the rewrite failed and text is the original summary"`
}

// --- generate_audio ---

type AudioInput struct {
	Text      string `json:"text" jsonschema:"Text to speak"`
	Title     string `json:"title" jsonschema:"Title used to name the audio file"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"Directory for the MP3 (default: AUDIO_DIR)"`
}

type AudioOutput struct {
	AudioPath string `json:"audio_path,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Note      string `json:"note,omitempty"`
	Chunks    int    `json:"chunks,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// --- summarize_url ---

type SummarizeURLInput struct {
	URL       string `json:"url" jsonschema:"YouTube video URL or web article URL"`
	Mode      string `json:"mode,omitempty" jsonschema:"Summary mode: quick (default), deep_dive, key_quotes, key_principles"`
	Audio     bool   `json:"audio,omitempty" jsonschema:"Also produce an MP3 narration"`
	Narrate   bool   `json:"narrate,omitempty" jsonschema:"Rewrite the summary for listening before synthesis"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"Directory for the MP3 (default: AUDIO_DIR)"`
}

// SummarizeURLOutput keeps the results of every stage that finished, so a
// failed synthesis still returns the summary.
type SummarizeURLOutput struct {
	Title       string           `json:"title,omitempty"`
	SourceType  string           `json:"source_type,omitempty"`
	DisplayDate string           `json:"display_date,omitempty"`
	Summary     string           `json:"summary,omitempty"`
	SummaryType string           `json:"summary_type,omitempty"`
	Narrated    bool             `json:"narrated,omitempty"`
	Audio       *speech.Artifact `json:"audio,omitempty"`
	Error       string           `json:"error,omitempty"`
	ErrorKind   string           `json:"error_kind,omitempty"`
}
