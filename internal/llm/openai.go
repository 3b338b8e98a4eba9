package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/sashabaranov/go-openai"
)

// openAICaller serves OpenAI and the OpenAI-compatible DeepSeek and Z.AI endpoints.
type openAICaller struct {
	id     string
	model  string
	client *openai.Client
}

func newOpenAI(p config.Provider, key string) *openAICaller {
	cfg := openai.DefaultConfig(key)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	return &openAICaller{
		id:     p.ID,
		model:  p.ModelName,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (o *openAICaller) Model() string { return o.id }

func (o *openAICaller) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
