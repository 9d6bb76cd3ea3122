package engine

// LLM prompt templates. Data only, no logic.

// summaryOutputContract is shared by every summary mode.
const summaryOutputContract = `
## Expected Output
Respond with a single JSON object and nothing else:
{
  "response": {
    "summary": "<%s in MARKDOWN format>",
    "published_date": "<YYYY-MM-DD>"
  }
}

## Notes
- If the published date is missing or unrecognizable, set "published_date" to null.
`

// summaryInputSection describes the user message every mode receives.
const summaryInputSection = `
## Input
You receive three values:
1. **Title**: the original title of the content
2. **Content**: the full text of the article, video transcript or document
3. **Published Date**: the publication date as found at the source, in any format
`

const quickSummaryPrompt = `## Purpose
Produce a concise bullet-point summary of the key points and a validated publication date.
` + summaryInputSection + `
## Formatting
- 3 to 5 bullets, each one a single clear takeaway
- Keep only the most significant points; skip anecdotes and filler
- Normalise the publication date to YYYY-MM-DD
` + "%s"

const deepDiveSummaryPrompt = `## Purpose
Produce a comprehensive summary that explains every major point, why it matters, and the surrounding context.
` + summaryInputSection + `
## Formatting
- Organise the summary into logical sections with headings and subheadings
- Cover background, the key arguments, and their implications
- Stay clear while keeping depth and completeness
- Normalise the publication date to YYYY-MM-DD
` + "%s"

const keyQuotesSummaryPrompt = `## Purpose
Extract the most impactful direct quotes that best represent the key ideas, arguments or insights.
` + summaryInputSection + `
## Formatting
- Quote verbatim; do not paraphrase inside quotation marks
- Prefer quotes that carry a critical point or a memorable insight
- Add the speaker or context after each quote when it is known
- Normalise the publication date to YYYY-MM-DD
` + "%s"

const keyPrinciplesSummaryPrompt = `## Purpose
Identify the fundamental principles, lessons or insights in the content.
` + summaryInputSection + `
## Formatting
- Extract 3 to 5 core principles as a numbered list
- Follow each principle with a short explanation of its significance
- Be concise without losing depth
- Normalise the publication date to YYYY-MM-DD
` + "%s"

// summaryUserPrompt carries the request values. Args: title, content, published date.
const summaryUserPrompt = `# Here is the content to summarize :

## Input Values
Title: %s
Content: %s
Published Date: %s
`

// narrationSystemPrompt rewrites a summary for text-to-speech.
const narrationSystemPrompt = `Rewrite a summary so it can be read aloud.

You receive:
Title: the title of the summarized content
Content: the summary text, usually in markdown
Summary Type: the kind of summary it is

Instructions:
1. Read the content thoroughly.
2. Produce a concise narration that keeps the intent of the summary type.
3. Use plain spoken sentences: no markdown, bullets, headings, URLs or symbols that sound odd when read aloud.
4. Respond with a single JSON object and nothing else:
{
  "response": {
    "summary": "<narration text in simple plain text>"
  }
}
`

// narrationUserPrompt args: title, summary text, summary type label.
const narrationUserPrompt = `# Here is the content to summarize for audio :

## Input Values
Title: %s
Content: %s
Summary Type : %s
`
