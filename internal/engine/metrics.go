package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the pipeline.
var metrics struct {
	Extractions        atomic.Int64
	VideoExtractions   atomic.Int64
	ArticleExtractions atomic.Int64
	FetchErrors        atomic.Int64
	TranscriptFailures atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	Summaries          atomic.Int64
	NarrationFallbacks atomic.Int64
	TTSCalls           atomic.Int64
	TTSChunks          atomic.Int64
	TTSErrors          atomic.Int64
	AudioFiles         atomic.Int64
}

var metricKeys = []string{
	"extractions", "video_extractions", "article_extractions",
	"fetch_errors", "transcript_failures",
	"llm_calls", "llm_errors", "summaries", "narration_fallbacks",
	"tts_calls", "tts_chunks", "tts_errors", "audio_files",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"extractions":         metrics.Extractions.Load(),
		"video_extractions":   metrics.VideoExtractions.Load(),
		"article_extractions": metrics.ArticleExtractions.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"transcript_failures": metrics.TranscriptFailures.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"summaries":           metrics.Summaries.Load(),
		"narration_fallbacks": metrics.NarrationFallbacks.Load(),
		"tts_calls":           metrics.TTSCalls.Load(),
		"tts_chunks":          metrics.TTSChunks.Load(),
		"tts_errors":          metrics.TTSErrors.Load(),
		"audio_files":         metrics.AudioFiles.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ sub-package.
func IncrExtraction()        { metrics.Extractions.Add(1) }
func IncrVideoExtraction()   { metrics.VideoExtractions.Add(1) }
func IncrArticleExtraction() { metrics.ArticleExtractions.Add(1) }
func IncrFetchError()        { metrics.FetchErrors.Add(1) }
func IncrTranscriptFailure() { metrics.TranscriptFailures.Add(1) }

// Incrementors for speech/ sub-package.
func IncrTTSCall()   { metrics.TTSCalls.Add(1) }
func IncrTTSChunk()  { metrics.TTSChunks.Add(1) }
func IncrTTSError()  { metrics.TTSErrors.Add(1) }
func IncrAudioFile() { metrics.AudioFiles.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
