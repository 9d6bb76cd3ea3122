package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// TextGenerator sends one system + user exchange to a chat model and returns
// the raw completion text.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
}

// GenerateFunc adapts a plain function to TextGenerator.
type GenerateFunc func(ctx context.Context, system, user string, temperature float64) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	return f(ctx, system, user, temperature)
}

// NewLLMGenerator builds the OpenAI-compatible chat client from config.
func NewLLMGenerator(c Config) TextGenerator {
	client := llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.SummaryTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: c.LLMTimeout}),
	)
	return GenerateFunc(func(ctx context.Context, system, user string, temperature float64) (string, error) {
		return client.Complete(ctx, system, user,
			llm.WithChatTemperature(temperature),
			llm.WithChatMaxTokens(c.LLMMaxTokens),
		)
	})
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// callLLM sends one request and returns the fence-stripped completion.
func callLLM(ctx context.Context, gen TextGenerator, system, user string, temperature float64) (string, error) {
	metrics.LLMCalls.Add(1)
	resp, err := gen.Generate(ctx, system, user, temperature)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// llmEnvelope is the JSON object every prompt asks the model to return.
type llmEnvelope struct {
	Response *struct {
		Summary       *string         `json:"summary"`
		PublishedDate json.RawMessage `json:"published_date"`
	} `json:"response"`
}

var errNoSummary = errors.New("response.summary missing from model output")

// decodeEnvelope parses {"response":{"summary":...,"published_date":...}}.
// The date is nil when absent, null, empty or the string "null".
func decodeEnvelope(raw string) (summary string, date *string, err error) {
	var env llmEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return "", nil, fmt.Errorf("decode model JSON: %w", err)
	}
	if env.Response == nil || env.Response.Summary == nil {
		return "", nil, errNoSummary
	}
	return *env.Response.Summary, parseNullableDate(env.Response.PublishedDate), nil
}

func parseNullableDate(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}
