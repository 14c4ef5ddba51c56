package prompts

var defaults = map[string]string{
	SummarySystem: `Summarize this partial transcript making it short and informative.

The summary should be accurate and factual, no formatting.`,

	SummaryUser: `{{ .Transcript }}`,

	FinalSystem: `From the summaries provided, create a detailed final result that includes:

- Title
- Summary (2-3 sentences)
- Insights

No formatting.`,

	FinalUser: `{{ .Summaries }}`,

	Quotes: `Extract the most impactful and quotable moments from this transcript:

{{ .Transcript }}

Provide 5-10 notable quotes with context about why each is significant.`,

	Outline: `Create a detailed outline of this video content:

{{ .Transcript }}

Structure it as a hierarchical outline with main points and sub-points.`,

	Actionables: `Identify all actionable items, recommendations, or next steps mentioned in this content:

{{ .Transcript }}

List them as clear, implementable action items.`,
}
