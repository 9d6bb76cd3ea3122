package digestserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_digest/internal/engine"
	"github.com/anatolykoptev/go_digest/internal/engine/sources"
	"github.com/anatolykoptev/go_digest/internal/engine/speech"
)

// Stage names reported through the Run progress callback.
const (
	StageExtract    = "extract"
	StageSummarize  = "summarize"
	StageNarrate    = "narrate"
	StageSynthesize = "synthesize"
)

type ContentExtractor interface {
	Extract(ctx context.Context, rawURL string) (engine.ExtractedContent, error)
}

type SummaryGenerator interface {
	Summarize(ctx context.Context, req engine.SummaryRequest) (engine.SummaryResult, error)
}

type NarrationAdapter interface {
	Adapt(ctx context.Context, summary, title, mode string) (string, bool)
}

type AudioSynthesizer interface {
	Synthesize(ctx context.Context, text, title, outputDir string) (speech.Artifact, error)
}

// Pipeline wires extraction, summarization, narration and speech together.
type Pipeline struct {
	extractor  ContentExtractor
	summarizer SummaryGenerator
	narrator   NarrationAdapter
	synth      AudioSynthesizer
	audioDir   string
}

// NewPipeline assembles a pipeline from its stages. audioDir is used when a
// caller gives no output directory.
func NewPipeline(ex ContentExtractor, sum SummaryGenerator, nar NarrationAdapter, syn AudioSynthesizer, audioDir string) *Pipeline {
	if audioDir == "" {
		audioDir = engine.DefaultAudioDir
	}
	return &Pipeline{extractor: ex, summarizer: sum, narrator: nar, synth: syn, audioDir: audioDir}
}

// NewFromConfig builds the production pipeline. cfg must already have defaults
// applied; cache may be nil.
func NewFromConfig(cfg engine.Config, gen engine.TextGenerator, cache *engine.Cache) *Pipeline {
	ex := sources.NewExtractor(
		sources.NewTranscriptFetcher(cfg),
		sources.NewArticleScraper(cfg),
		cache,
	)
	return NewPipeline(ex,
		engine.NewSummarizer(gen, cfg),
		engine.NewNarrator(gen, cfg),
		speech.NewSynthesizer(speech.NewOpenAIClient(cfg), cfg),
		cfg.AudioDir,
	)
}

// ExtractContent classifies url and returns its title, date and text.
func (p *Pipeline) ExtractContent(ctx context.Context, url string) (engine.ExtractedContent, error) {
	return p.extractor.Extract(ctx, url)
}

// GenerateSummary summarizes content in the given mode.
func (p *Pipeline) GenerateSummary(ctx context.Context, content, title, date, mode string) (engine.SummaryResult, error) {
	return p.summarizer.Summarize(ctx, engine.SummaryRequest{
		Content:     content,
		Title:       title,
		PublishDate: date,
		Mode:        mode,
	})
}

// GenerateAudioSummary rewrites a summary for listening. ok is false when the
// rewrite is unavailable; callers then speak the summary itself.
func (p *Pipeline) GenerateAudioSummary(ctx context.Context, summary, title, mode string) (string, bool) {
	if p.narrator == nil {
		return "", false
	}
	return p.narrator.Adapt(ctx, summary, title, mode)
}

// GenerateAudio writes text as MP3 under dir, or the default audio dir.
func (p *Pipeline) GenerateAudio(ctx context.Context, text, title, dir string) (speech.Artifact, error) {
	if dir == "" {
		dir = p.audioDir
	}
	return p.synth.Synthesize(ctx, text, title, dir)
}

// RunRequest drives one end-to-end run.
type RunRequest struct {
	URL       string
	Mode      string
	Audio     bool
	Narrate   bool // rewrite the summary before synthesis; only with Audio
	OutputDir string
}

// RunResult holds whatever stages completed. On error the fields of the
// stages that succeeded are still set.
type RunResult struct {
	Content     engine.ExtractedContent `json:"content"`
	Summary     *engine.SummaryResult   `json:"summary,omitempty"`
	DisplayDate string                  `json:"display_date,omitempty"`
	Narrated    bool                    `json:"narrated"`
	SpokenText  string                  `json:"spoken_text,omitempty"`
	Audio       *speech.Artifact        `json:"audio,omitempty"`
}

// Run extracts, summarizes and optionally narrates and synthesizes req.URL.
// The first failing stage ends the run.
func (p *Pipeline) Run(ctx context.Context, req RunRequest, progress func(stage string)) (RunResult, error) {
	step := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}
	var res RunResult

	step(StageExtract)
	content, err := p.ExtractContent(ctx, req.URL)
	if err != nil {
		return res, err
	}
	res.Content = content

	step(StageSummarize)
	sum, err := p.GenerateSummary(ctx, content.Content, content.Title, content.PublishDate, req.Mode)
	if err != nil {
		return res, err
	}
	res.Summary = &sum
	res.DisplayDate = sum.DisplayDate(content.PublishDate)

	if !req.Audio {
		return res, nil
	}

	text := sum.Summary
	if req.Narrate {
		step(StageNarrate)
		if narration, ok := p.GenerateAudioSummary(ctx, sum.Summary, content.Title, sum.SummaryType); ok {
			text = narration
			res.Narrated = true
		}
	}
	res.SpokenText = text

	step(StageSynthesize)
	art, err := p.GenerateAudio(ctx, text, content.Title, req.OutputDir)
	if err != nil {
		slog.Warn("run: audio failed, keeping summary", slog.String("url", req.URL), slog.Any("error", err))
		return res, err
	}
	res.Audio = &art
	return res, nil
}
