package config

import "github.com/nguyentantai21042004/bodhiflow/internal/domain"

// VerbatimPlaceholder marks a style that receives the whole transcript in place,
// without chunking or language substitution.
const VerbatimPlaceholder = "[full_transcript_text]"

// LanguagePlaceholder is replaced by the target language in chunked styles.
const LanguagePlaceholder = "[Language]"

const languageRule = "All output must be generated entirely in [Language]. Do not use any other language at any point in the response. Do not include this unorganized text into your response.\nFormat the entire response using Markdown syntax.\n"

// DefaultStyles is used when the config declares no styles.
func DefaultStyles() []domain.Style {
	return []domain.Style{
		{
			Name: "Balanced and Detailed",
			Prompt: "Turn the following unorganized text into a well-structured, readable format while retaining every detail, context and nuance of the original content.\n" +
				"Improve clarity, grammar and coherence without cutting, summarizing or omitting any information.\n" +
				"- Organize the content into logical sections with subheadings.\n" +
				"- Use bullet points or numbered lists for facts, stats and comparisons.\n" +
				"- Bold key terms, names and headings.\n" +
				"- Preserve the original tone and narrative style.\n" +
				languageRule + "Text:\n",
		},
		{
			Name: "Summary",
			Prompt: "Summarize the following transcript into a concise and informative summary.\n" +
				"Identify the core message, main arguments and key pieces of information, and keep the conclusions.\n" +
				languageRule + "Text: ",
		},
		{
			Name: "Educational",
			Prompt: "Transform the following transcript into a comprehensive educational text, resembling a textbook chapter, with clear headings, subheadings and bullet points.\n" +
				"For every technical term that the transcript uses without explaining, add a definition of at most two sentences as a blockquote near its first mention.\n" +
				languageRule + "Text:",
		},
		{
			Name: "Q&A Generation",
			Prompt: "Generate a set of questions and answers based on the following transcript for self-assessment.\n" +
				"Format each question as a level 3 heading (### Question) immediately followed by its answer.\n" +
				languageRule + "Text:",
		},
		{
			Name: "Meeting Minutes",
			Prompt: "You are a senior business analyst and meeting-minutes specialist.\n" +
				"Read the raw meeting transcript and output only these two Markdown sections:\n" +
				"1. **Action Items**: a table with columns # | Task | Owner | Due Date | Status (default \"Open\").\n" +
				"2. **Agenda & Notes**: agenda items in the order discussed, each with topic, key points, decision and a one-sentence rationale.\n" +
				"Use the same language as the transcript. Keep English names in English.\n\n" +
				"### Transcript\n<<<TRANSCRIPT>>\n" + VerbatimPlaceholder + "\n<<<END>>\n",
		},
	}
}
