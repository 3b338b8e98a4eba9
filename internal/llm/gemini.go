package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"google.golang.org/genai"
)

type geminiCaller struct {
	id     string
	model  string
	logger logger.Logger

	mu         sync.Mutex
	apiKeys    []string
	currentKey int
}

func newGemini(p config.Provider, keys []string, log logger.Logger) *geminiCaller {
	return &geminiCaller{
		id:      p.ID,
		model:   p.ModelName,
		logger:  log,
		apiKeys: keys,
	}
}

func (g *geminiCaller) Model() string { return g.id }

// Generate tries each key once, rotating on 429 / quota errors.
func (g *geminiCaller) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for range len(g.apiKeys) {
		key, idx := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if IsRateLimit(err) && len(g.apiKeys) > 1 {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var sb strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		}

		return "", ErrEmptyResponse
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiCaller) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotateKey advances past idx unless another call already did.
func (g *geminiCaller) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}
