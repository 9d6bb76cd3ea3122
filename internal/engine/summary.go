package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Summarizer turns extracted content into a mode-specific summary.
type Summarizer struct {
	gen         TextGenerator
	temperature float64
	maxTokens   int
}

// NewSummarizer builds a Summarizer from config. Call cfg.WithDefaults first.
func NewSummarizer(gen TextGenerator, cfg Config) *Summarizer {
	return &Summarizer{
		gen:         gen,
		temperature: cfg.SummaryTemperature,
		maxTokens:   cfg.SummaryMaxTokens,
	}
}

// Summarize validates the request, truncates the content to the token budget
// and makes a single model call. Empty content and unknown modes fail before
// any call is made.
func (s *Summarizer) Summarize(ctx context.Context, req SummaryRequest) (SummaryResult, error) {
	if req.Content == "" {
		return SummaryResult{}, NewError(KindEmptyInput, MsgNoSummaryContent)
	}
	mode, ok := ParseMode(req.Mode)
	if !ok {
		return SummaryResult{}, InvalidModeError(req.Mode)
	}

	content := TruncateContent(req.Content, s.maxTokens)
	if len(content) != len(req.Content) {
		slog.Info("summary: content truncated",
			slog.Int("from_chars", len(req.Content)),
			slog.Int("to_chars", len(content)))
	}
	user := fmt.Sprintf(summaryUserPrompt, req.Title, content, req.PublishDate)

	var out SummaryResult
	err := TrackOperation(ctx, "summarize", func(ctx context.Context) error {
		raw, err := callLLM(ctx, s.gen, mode.SystemPrompt(), user, s.temperature)
		if err != nil {
			return err
		}
		summary, date, err := decodeEnvelope(raw)
		if err != nil {
			return err
		}
		if strings.TrimSpace(summary) == "" {
			return errNoSummary
		}
		out = SummaryResult{Summary: summary, SummaryType: mode.String(), PublishedDate: date}
		return nil
	})
	if err != nil {
		slog.Warn("summary: generation failed", slog.String("mode", mode.String()), slog.Any("error", err))
		return SummaryResult{}, GenerationError(err)
	}
	metrics.Summaries.Add(1)
	return out, nil
}
