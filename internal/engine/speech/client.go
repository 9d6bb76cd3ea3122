// Package speech turns narration text into an MP3 file.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// maxAudioBytes caps a single speech response. One 4000-char chunk is well under 10 MiB.
const maxAudioBytes = 32 << 20

// Client converts one piece of text into MP3 bytes.
type Client interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

// OpenAIClient calls an OpenAI-compatible /audio/speech endpoint.
type OpenAIClient struct {
	http  *http.Client
	base  string
	key   string
	model string
	voice string
	speed float64
}

// NewOpenAIClient builds a speech client from config. Call cfg.WithDefaults first.
func NewOpenAIClient(cfg engine.Config) *OpenAIClient {
	return &OpenAIClient{
		http:  &http.Client{Timeout: cfg.TTSTimeout},
		base:  strings.TrimRight(cfg.LLMAPIBase, "/"),
		key:   cfg.LLMAPIKey,
		model: cfg.TTSModel,
		voice: cfg.TTSVoice,
		speed: cfg.TTSSpeed,
	}
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Speak makes one POST and returns the audio body.
func (c *OpenAIClient) Speak(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(speechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          c.voice,
		Speed:          c.speed,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("User-Agent", engine.UserAgentBot)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiErrorBody
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("speech API status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("speech API status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("speech API returned no audio")
	}
	return audio, nil
}
