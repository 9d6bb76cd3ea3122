package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_digest/internal/digestserver"
	"github.com/anatolykoptev/go_digest/internal/engine"
	"github.com/anatolykoptev/go_digest/internal/toolutil"
)

var (
	runMode    string
	runAudio   bool
	runNarrate bool
	runOut     string
)

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Summarize one URL and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// runOnce prints the error itself; flag and arg errors still go through cobra.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cfg := loadConfig()

		cache := engine.NewCache(cfg.RedisURL, cfg.CacheTTL, cfg.CacheMaxEntries, cfg.CacheCleanupInterval)
		defer cache.Close()
		pipeline := digestserver.NewFromConfig(cfg, engine.NewLLMGenerator(cfg), cache)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runOnce(ctx, pipeline, digestserver.RunRequest{
			URL:       args[0],
			Mode:      toolutil.NormMode(runMode),
			Audio:     runAudio || runNarrate,
			Narrate:   runNarrate,
			OutputDir: runOut,
		}, cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", toolutil.DefaultMode, "Summary mode: "+toolutil.ModeNames())
	runCmd.Flags().BoolVar(&runAudio, "audio", false, "Also write an MP3 of the summary")
	runCmd.Flags().BoolVar(&runNarrate, "narrate", false, "Rewrite the summary for listening before synthesis (implies --audio)")
	runCmd.Flags().StringVar(&runOut, "out", "", "Output directory for audio (default: AUDIO_DIR)")
}

var stageLabels = map[string]string{
	digestserver.StageExtract:    "Extracting content...",
	digestserver.StageSummarize:  "Generating summary...",
	digestserver.StageNarrate:    "Adapting summary for audio...",
	digestserver.StageSynthesize: "Generating audio...",
}

func newSpinner() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Starting..."),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
	)
}

func runOnce(ctx context.Context, p *digestserver.Pipeline, req digestserver.RunRequest, w io.Writer) error {
	bar := newSpinner()
	res, err := p.Run(ctx, req, func(stage string) {
		bar.Describe(fmt.Sprintf("[cyan]%s[reset]", stageLabels[stage]))
		_ = bar.Add(1)
	})
	_ = bar.Clear()

	printResult(w, res)
	if err != nil {
		fmt.Fprintf(w, "\nError (%s): %s\n", engine.KindOf(err), err)
		return err
	}
	return nil
}

func printResult(w io.Writer, res digestserver.RunResult) {
	if res.Content.Title == "" {
		return
	}
	fmt.Fprintf(w, "Title: %s\n", res.Content.Title)
	if res.Summary == nil {
		return
	}
	label := res.Summary.SummaryType
	if m, ok := engine.ParseMode(label); ok {
		label = m.Label()
	}
	fmt.Fprintf(w, "Published: %s\n\n", res.DisplayDate)
	fmt.Fprintf(w, "Summary (%s)\n%s\n%s\n", label, strings.Repeat("-", len(label)+10), res.Summary.Summary)
	if res.Audio != nil {
		fmt.Fprintf(w, "\nAudio: %s (%d chunk(s))\n%s\n", res.Audio.Path, res.Audio.Chunks, res.Audio.Note)
	}
}
