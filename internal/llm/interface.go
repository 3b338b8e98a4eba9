package llm

import "context"

// Caller sends one prompt to a chat model and returns its text.
type Caller interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Model is the catalog id the caller was built for.
	Model() string
}
