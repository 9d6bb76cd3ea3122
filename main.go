// go_digest: YouTube and article summary MCP server.
//
// Exposes five MCP tools: extract_content, generate_summary,
// generate_audio_summary, generate_audio and summarize_url.
// Runs as HTTP MCP server or stdio transport; `go_digest run <url>` does a
// single run from the command line.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_digest/internal/digestserver"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "go_digest",
	Short: "Summarize YouTube videos and articles, optionally as MP3 narration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	rootCmd.Version = version
	rootCmd.AddCommand(serveCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg := loadConfig()
	mcpPort := env.Str("MCP_PORT", "8892")

	slog.Info("starting go_digest",
		slog.String("port", mcpPort),
		slog.String("model", cfg.LLMModel),
		slog.String("audio_dir", cfg.AudioDir),
	)

	cache := engine.NewCache(cfg.RedisURL, cfg.CacheTTL, cfg.CacheMaxEntries, cfg.CacheCleanupInterval)
	defer cache.Close()

	pipeline := digestserver.NewFromConfig(cfg, engine.NewLLMGenerator(cfg), cache)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_digest",
		Version: version,
	}, nil)

	digestserver.RegisterTools(server, pipeline)
	slog.Info("tools registered", slog.Int("count", digestserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_digest",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		return err
	}
	return nil
}

// loadConfig reads the environment once. Everything downstream receives the
// returned value; nothing reads env vars after this.
func loadConfig() engine.Config {
	c := engine.Config{
		LLMAPIKey:            env.Str("OPENAI_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("OPENAI_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("OPENAI_API_BASE", engine.DefaultLLMAPIBase),
		LLMModel:             env.Str("LLM_MODEL", engine.DefaultLLMModel),
		LLMTimeout:           env.Duration("LLM_TIMEOUT", 120*time.Second),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", engine.DefaultLLMMaxTokens),
		SummaryTemperature:   env.Float("SUMMARY_TEMPERATURE", 0.5),
		NarrationTemperature: env.Float("NARRATION_TEMPERATURE", 1.0),
		SummaryMaxTokens:     env.Int("SUMMARY_MAX_TOKENS", engine.DefaultSummaryMaxToken),

		YouTubeAPIKey: env.Str("YOU_TUBE_API_KEY", ""),

		TTSModel:      env.Str("TTS_MODEL", engine.DefaultTTSModel),
		TTSVoice:      env.Str("TTS_VOICE", engine.DefaultTTSVoice),
		TTSSpeed:      env.Float("TTS_SPEED", 1.0),
		TTSChunkChars: env.Int("TTS_CHUNK_CHARS", engine.DefaultTTSChunkChars),
		TTSRPS:        env.Float("TTS_RPS", 0),
		TTSTimeout:    env.Duration("TTS_TIMEOUT", 120*time.Second),
		AudioDir:      env.Str("AUDIO_DIR", engine.DefaultAudioDir),
		FFmpegPath:    env.Str("FFMPEG_PATH", ""),

		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 30*time.Second),
		RedisURL:             env.Str("REDIS_URL", ""),
		CacheTTL:             env.Duration("CACHE_TTL", 15*time.Minute),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
	}
	if c.LLMAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set; summary and audio calls will fail")
	}
	return c.WithDefaults()
}
