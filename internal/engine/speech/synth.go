package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_digest/internal/engine"
)

// SuccessNote accompanies every written artifact.
const SuccessNote = "Audio generated successfully. You can play it below or download it."

// Artifact describes a written audio file.
type Artifact struct {
	Path     string `json:"audio_path"`
	Filename string `json:"filename"`
	Note     string `json:"note"`
	Chunks   int    `json:"chunks"`
}

// Synthesizer chunks text, calls the speech client once per chunk and writes
// the joined audio to disk.
type Synthesizer struct {
	client   Client
	joiner   Joiner
	maxChars int
	limiter  *rate.Limiter // nil = unpaced
	now      func() time.Time
}

// NewSynthesizer builds a synthesizer from config. Call cfg.WithDefaults first.
func NewSynthesizer(client Client, cfg engine.Config) *Synthesizer {
	s := &Synthesizer{
		client:   client,
		joiner:   FrameJoiner{},
		maxChars: cfg.TTSChunkChars,
		now:      time.Now,
	}
	if cfg.FFmpegPath != "" {
		s.joiner = FFmpegJoiner{Bin: cfg.FFmpegPath}
	}
	if cfg.TTSRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.TTSRPS), 1)
	}
	return s
}

// Synthesize writes text as one MP3 under outputDir.
// If any chunk fails nothing is written.
func (s *Synthesizer) Synthesize(ctx context.Context, text, title, outputDir string) (Artifact, error) {
	if strings.TrimSpace(text) == "" {
		return Artifact{}, engine.NewError(engine.KindEmptyInput, engine.MsgNoAudioText)
	}
	engine.IncrTTSCall()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Artifact{}, engine.SynthesisError(err)
	}

	chunks := ChunkText(text, s.maxChars)
	if len(chunks) == 1 {
		return s.single(ctx, chunks[0], title, outputDir)
	}

	audios := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		audio, err := s.speak(ctx, chunk)
		if err != nil {
			slog.Warn("speech: chunk failed",
				slog.Int("chunk", i+1), slog.Int("chunks", len(chunks)), slog.Any("error", err))
			return Artifact{}, engine.ChunkError(i, len(chunks), err)
		}
		audios = append(audios, audio)
	}

	name := randomName(title)
	path := filepath.Join(outputDir, name)
	if err := s.joiner.Join(ctx, audios, path); err != nil {
		engine.IncrTTSError()
		slog.Warn("speech: join failed", slog.String("path", path), slog.Any("error", err))
		return Artifact{}, engine.SynthesisError(fmt.Errorf("join %d chunks: %w", len(chunks), err))
	}
	return s.done(path, name, len(chunks)), nil
}

func (s *Synthesizer) single(ctx context.Context, text, title, outputDir string) (Artifact, error) {
	audio, err := s.speak(ctx, text)
	if err != nil {
		slog.Warn("speech: synthesis failed", slog.Any("error", err))
		return Artifact{}, engine.SynthesisError(err)
	}
	name := timestampedName(title, s.now())
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		engine.IncrTTSError()
		return Artifact{}, engine.SynthesisError(err)
	}
	return s.done(path, name, 1), nil
}

func (s *Synthesizer) speak(ctx context.Context, text string) ([]byte, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	engine.IncrTTSChunk()
	audio, err := s.client.Speak(ctx, text)
	if err != nil {
		engine.IncrTTSError()
		return nil, err
	}
	return audio, nil
}

func (s *Synthesizer) done(path, name string, chunks int) Artifact {
	engine.IncrAudioFile()
	slog.Info("speech: audio written", slog.String("path", path), slog.Int("chunks", chunks))
	return Artifact{Path: path, Filename: name, Note: SuccessNote, Chunks: chunks}
}
