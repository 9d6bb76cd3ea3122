package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, built once in main and handed to
// each component constructor.
type Config struct {
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTimeout           time.Duration
	LLMMaxTokens         int
	SummaryTemperature   float64
	NarrationTemperature float64
	SummaryMaxTokens     int // truncation budget for summarizer input

	YouTubeAPIKey  string
	YouTubeAPIBase string // Data API v3 root, overridable for tests

	TTSModel      string
	TTSVoice      string
	TTSSpeed      float64
	TTSChunkChars int
	TTSRPS        float64 // 0 = unlimited
	TTSTimeout    time.Duration
	AudioDir      string
	FFmpegPath    string // empty = native MP3 frame join

	FetchTimeout         time.Duration
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	RedisURL             string

	HTTPClient *http.Client
}

// Defaults used when a Config field is left zero.
const (
	DefaultLLMAPIBase      = "https://api.openai.com/v1"
	DefaultLLMModel        = "gpt-4o"
	DefaultSummaryMaxToken = 120000
	DefaultLLMMaxTokens    = 4096
	DefaultTTSModel        = "tts-1"
	DefaultTTSVoice        = "alloy"
	DefaultTTSChunkChars   = 4000
	DefaultYouTubeAPIBase  = "https://www.googleapis.com/youtube/v3"
	DefaultAudioDir        = "audio_files"
)

// WithDefaults returns a copy of c with zero fields filled in.
func (c Config) WithDefaults() Config {
	if c.LLMModel == "" {
		c.LLMModel = DefaultLLMModel
	}
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = DefaultLLMAPIBase
	}
	if c.SummaryTemperature <= 0 {
		c.SummaryTemperature = 0.5
	}
	if c.NarrationTemperature <= 0 {
		c.NarrationTemperature = 1.0
	}
	if c.LLMMaxTokens <= 0 {
		c.LLMMaxTokens = DefaultLLMMaxTokens
	}
	if c.SummaryMaxTokens <= 0 {
		c.SummaryMaxTokens = DefaultSummaryMaxToken
	}
	if c.TTSModel == "" {
		c.TTSModel = DefaultTTSModel
	}
	if c.TTSVoice == "" {
		c.TTSVoice = DefaultTTSVoice
	}
	if c.TTSSpeed <= 0 {
		c.TTSSpeed = 1.0
	}
	if c.TTSChunkChars <= 0 {
		c.TTSChunkChars = DefaultTTSChunkChars
	}
	if c.YouTubeAPIBase == "" {
		c.YouTubeAPIBase = DefaultYouTubeAPIBase
	}
	if c.AudioDir == "" {
		c.AudioDir = DefaultAudioDir
	}
	if c.HTTPClient == nil {
		c.HTTPClient = NewFetchClient(c.FetchTimeout)
	}
	return c
}
