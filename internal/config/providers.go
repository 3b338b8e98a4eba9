package config

import "fmt"

type Kind string

const (
	KindASR Kind = "asr"
	KindLLM Kind = "llm"
)

const (
	ProviderWhisperCpp = "whisper_cpp"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderDeepSeek   = "deepseek"
	ProviderZAI        = "zai"
)

// Provider is one catalog entry. MaxConcurrency caps any pool that talks to it.
type Provider struct {
	ID                      string `yaml:"id" json:"id"`
	Kind                    Kind   `yaml:"kind" json:"kind"`
	Provider                string `yaml:"provider" json:"provider"`
	ModelName               string `yaml:"model_name" json:"model_name"`
	MaxConcurrency          int    `yaml:"max_concurrency,omitempty" json:"max_concurrency,omitempty"`
	MaxChunkDurationSeconds int    `yaml:"max_chunk_duration_seconds,omitempty" json:"max_chunk_duration_seconds,omitempty"`
	BaseURL                 string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

// DefaultProviders is the built-in catalog used when the config declares none.
func DefaultProviders() []Provider {
	return []Provider{
		{ID: "whisper/local", Kind: KindASR, Provider: ProviderWhisperCpp, ModelName: "whisper.cpp"},
		{ID: "openai/gpt-4o-transcribe", Kind: KindASR, Provider: ProviderOpenAI, ModelName: "gpt-4o-transcribe"},
		{ID: "zai/glm-asr-2512", Kind: KindASR, Provider: ProviderZAI, ModelName: "glm-asr-2512",
			MaxConcurrency: 5, MaxChunkDurationSeconds: 30, BaseURL: "https://api.z.ai/api/paas/v4"},
		{ID: "zai/glm-4.7-flash", Kind: KindLLM, Provider: ProviderZAI, ModelName: "glm-4.7-flash",
			MaxConcurrency: 1, BaseURL: "https://api.z.ai/api/paas/v4"},
		{ID: "gemini/gemini-2.5-flash", Kind: KindLLM, Provider: ProviderGemini, ModelName: "gemini-2.5-flash"},
		{ID: "deepseek/deepseek-v3.2", Kind: KindLLM, Provider: ProviderDeepSeek, ModelName: "deepseek-chat",
			BaseURL: "https://api.deepseek.com"},
		{ID: "openai/gpt-5-mini", Kind: KindLLM, Provider: ProviderOpenAI, ModelName: "gpt-5-mini"},
		{ID: "openai/gpt-5-nano", Kind: KindLLM, Provider: ProviderOpenAI, ModelName: "gpt-5-nano"},
	}
}

func (c *Config) validateProviders() error {
	seen := make(map[string]bool, len(c.Providers))
	for _, p := range c.Providers {
		if p.ID == "" {
			return fmt.Errorf("%w: provider entry without id", ErrInvalid)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate provider id %q", ErrInvalid, p.ID)
		}
		seen[p.ID] = true

		if p.Kind != KindASR && p.Kind != KindLLM {
			return fmt.Errorf("%w: provider %q has unknown kind %q", ErrInvalid, p.ID, p.Kind)
		}
		switch p.Provider {
		case ProviderWhisperCpp:
			if p.Kind != KindASR {
				return fmt.Errorf("%w: provider %q: whisper_cpp only serves asr", ErrInvalid, p.ID)
			}
		case ProviderGemini:
			if p.Kind != KindLLM {
				return fmt.Errorf("%w: provider %q: gemini only serves llm", ErrInvalid, p.ID)
			}
		case ProviderOpenAI, ProviderDeepSeek, ProviderZAI:
		default:
			return fmt.Errorf("%w: provider %q has unknown provider %q", ErrInvalid, p.ID, p.Provider)
		}
		if p.MaxConcurrency < 0 {
			return fmt.Errorf("%w: provider %q has negative max_concurrency", ErrInvalid, p.ID)
		}
	}
	return nil
}

// Lookup finds a catalog entry by id and kind.
func (c *Config) Lookup(id string, kind Kind) (Provider, error) {
	for _, p := range c.Providers {
		if p.ID == id {
			if p.Kind != kind {
				return Provider{}, fmt.Errorf("%w: model %q is %s, not %s", ErrInvalid, id, p.Kind, kind)
			}
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: unknown %s model %q", ErrInvalid, kind, id)
}

// APIKey returns the first credential configured for the provider.
func (k APIKeysConfig) APIKey(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return k.OpenAI
	case ProviderDeepSeek:
		return k.DeepSeek
	case ProviderZAI:
		return k.ZAI
	case ProviderGemini:
		if len(k.Gemini) > 0 {
			return k.Gemini[0]
		}
	}
	return ""
}

// EffectiveConcurrency is min(requested, limit) when limit is set, never below 1.
func EffectiveConcurrency(requested, limit int) int {
	n := requested
	if limit > 0 && limit < n {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}
