package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Narrator rewrites a summary into text suited for speech synthesis.
// It is best effort: every failure yields ok=false and the caller keeps the
// original summary.
type Narrator struct {
	gen         TextGenerator
	temperature float64
}

// NewNarrator builds a Narrator from config. Call cfg.WithDefaults first.
func NewNarrator(gen TextGenerator, cfg Config) *Narrator {
	return &Narrator{gen: gen, temperature: cfg.NarrationTemperature}
}

// Adapt returns the narration text and true, or "" and false when an input is
// missing or the model call fails. Missing inputs make no call.
// mode may be a wire name or a label; unknown values are passed through as-is.
func (n *Narrator) Adapt(ctx context.Context, summary, title, mode string) (string, bool) {
	if summary == "" || title == "" || mode == "" {
		return "", false
	}
	summaryType := mode
	if m, ok := ParseMode(mode); ok {
		summaryType = m.Label()
	}

	user := fmt.Sprintf(narrationUserPrompt, title, summary, summaryType)
	raw, err := callLLM(ctx, n.gen, narrationSystemPrompt, user, n.temperature)
	if err == nil {
		var text string
		text, _, err = decodeEnvelope(raw)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, true
		}
		if err == nil {
			err = errNoSummary
		}
	}
	metrics.NarrationFallbacks.Add(1)
	slog.Warn("narration: falling back to summary text", slog.String("title", title), slog.Any("error", err))
	return "", false
}
