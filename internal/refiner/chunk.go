package refiner

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/llm"
)

const continuationNote = "\n\n[This is a continuation of the previous text. Please continue refining in the same style.]\n\n"

// SplitIntoChunks groups paragraphs greedily so no chunk exceeds maxWords,
// unless a single paragraph does on its own.
func SplitIntoChunks(text string, maxWords int) []string {
	var (
		chunks  []string
		current []string
		words   int
	)
	for _, para := range strings.Split(text, "\n\n") {
		n := len(strings.Fields(para))
		if words+n > maxWords && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current, words = nil, 0
		}
		current = append(current, para)
		words += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}
	return chunks
}

// RefineText applies a style prompt to text. Verbatim styles get the whole
// transcript in place of the placeholder; others are chunked by word count.
func RefineText(ctx context.Context, caller llm.Caller, text, prompt, language string, chunkSize int) (string, error) {
	if strings.Contains(prompt, config.VerbatimPlaceholder) {
		return caller.Generate(ctx, strings.ReplaceAll(prompt, config.VerbatimPlaceholder, text))
	}

	prompt = strings.ReplaceAll(prompt, config.LanguagePlaceholder, language)
	if chunkSize <= 0 || len(strings.Fields(text)) <= chunkSize {
		return caller.Generate(ctx, prompt+text)
	}

	chunks := SplitIntoChunks(text, chunkSize)
	refined := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		p := prompt + chunk
		if i > 0 {
			p = prompt + continuationNote + chunk
		}
		out, err := caller.Generate(ctx, p)
		if err != nil {
			return "", fmt.Errorf("refine chunk %d/%d: %w", i+1, len(chunks), err)
		}
		refined = append(refined, out)
	}
	return strings.Join(refined, "\n\n"), nil
}
