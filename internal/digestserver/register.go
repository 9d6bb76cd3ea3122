package digestserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_digest/internal/toolutil"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 5

// RegisterTools registers the digest tools on the given MCP server:
// extract_content, generate_summary, generate_audio_summary, generate_audio
// and summarize_url.
func RegisterTools(server *mcp.Server, p *Pipeline) {
	t := &tools{p: p}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_content",
		Description: "Extract the title, publish date and text of a URL. YouTube links return the video transcript; any other URL is scraped as an article.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.extractContent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_summary",
		Description: "Summarize text with an LLM. Modes: " + toolutil.ModeNames() + ". Returns the summary and, if the model found one, the publish date.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.generateSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_audio_summary",
		Description: "Rewrite a summary so it reads naturally aloud. Falls back to the original summary if the rewrite fails.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.generateAudioSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_audio",
		Description: "Convert text to an MP3 with text-to-speech. Long text is split into chunks and joined into one file. Returns the file path.",
	}, t.generateAudio)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_url",
		Description: "Extract a YouTube video or article, summarize it in the chosen mode (" + toolutil.ModeNames() + ") and optionally narrate it to MP3. Completed stages are returned even if a later one fails.",
	}, t.summarizeURL)
}

type tools struct {
	p *Pipeline
}

func (t *tools) extractContent(ctx context.Context, _ *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	c, err := t.p.ExtractContent(ctx, input.URL)
	if err != nil {
		var out ExtractOutput
		out.Error, out.ErrorKind = toolutil.ErrorFields(err)
		return nil, out, nil
	}
	return nil, ExtractOutput{
		Title:       c.Title,
		PublishDate: c.PublishDate,
		Content:     c.Content,
		SourceType:  c.SourceType,
	}, nil
}

func (t *tools) generateSummary(ctx context.Context, _ *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, SummaryOutput, error) {
	res, err := t.p.GenerateSummary(ctx, input.Content, input.Title, input.PublishDate, toolutil.NormMode(input.Mode))
	if err != nil {
		var out SummaryOutput
		out.Error, out.ErrorKind = toolutil.ErrorFields(err)
		return nil, out, nil
	}
	return nil, SummaryOutput{
		Summary:       res.Summary,
		SummaryType:   res.SummaryType,
		PublishedDate: res.PublishedDate,
	}, nil
}

func (t *tools) generateAudioSummary(ctx context.Context, _ *mcp.CallToolRequest, input AudioSummaryInput) (*mcp.CallToolResult, AudioSummaryOutput, error) {
	if text, ok := t.p.GenerateAudioSummary(ctx, input.Summary, input.Title, toolutil.NormMode(input.Mode)); ok {
		return nil, AudioSummaryOutput{Text: text, Narrated: true}, nil
	}
	return nil, AudioSummaryOutput{Text: input.Summary}, nil
}

func (t *tools) generateAudio(ctx context.Context, _ *mcp.CallToolRequest, input AudioInput) (*mcp.CallToolResult, AudioOutput, error) {
	art, err := t.p.GenerateAudio(ctx, input.Text, input.Title, input.OutputDir)
	if err != nil {
		var out AudioOutput
		out.Error, out.ErrorKind = toolutil.ErrorFields(err)
		return nil, out, nil
	}
	return nil, AudioOutput{
		AudioPath: art.Path,
		Filename:  art.Filename,
		Note:      art.Note,
		Chunks:    art.Chunks,
	}, nil
}

func (t *tools) summarizeURL(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeURLInput) (*mcp.CallToolResult, SummarizeURLOutput, error) {
	res, err := t.p.Run(ctx, RunRequest{
		URL:       input.URL,
		Mode:      toolutil.NormMode(input.Mode),
		Audio:     input.Audio,
		Narrate:   input.Narrate,
		OutputDir: input.OutputDir,
	}, func(stage string) {
		slog.Debug("summarize_url: stage", slog.String("stage", stage), slog.String("url", input.URL))
	})

	out := SummarizeURLOutput{
		Title:       res.Content.Title,
		SourceType:  res.Content.SourceType,
		DisplayDate: res.DisplayDate,
		Narrated:    res.Narrated,
		Audio:       res.Audio,
	}
	if res.Summary != nil {
		out.Summary = res.Summary.Summary
		out.SummaryType = res.Summary.SummaryType
	}
	out.Error, out.ErrorKind = toolutil.ErrorFields(err)
	return nil, out, nil
}
