package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid minimal config",
			config:  Config{Paths: PathsConfig{Output: "data/output"}},
			wantErr: false,
		},
		{
			name:    "missing output path",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "unknown llm model",
			config: Config{
				Paths: PathsConfig{Output: "out"},
				LLM:   LLMConfig{Model: "nope/model"},
			},
			wantErr: true,
		},
		{
			name: "asr model used as llm",
			config: Config{
				Paths: PathsConfig{Output: "out"},
				LLM:   LLMConfig{Model: "openai/gpt-4o-transcribe"},
			},
			wantErr: true,
		},
		{
			name: "end before start",
			config: Config{
				Paths: PathsConfig{Output: "out"},
				Run:   RunConfig{StartIndex: 5, EndIndex: 3},
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Paths:     PathsConfig{Output: "out"},
				Providers: []Provider{{ID: "x/y", Kind: KindLLM, Provider: "acme"}},
			},
			wantErr: true,
		},
		{
			name: "duplicate style",
			config: Config{
				Paths: PathsConfig{Output: "out"},
				Styles: []domain.Style{
					{Name: "A", Prompt: "p"},
					{Name: "A", Prompt: "q"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want wrapped ErrInvalid", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Performance.MaxWorkersProcesses != 4 {
		t.Errorf("MaxWorkersProcesses = %d, want 4", cfg.Performance.MaxWorkersProcesses)
	}
	if cfg.Performance.MaxWorkersAsync != 10 {
		t.Errorf("MaxWorkersAsync = %d, want 10", cfg.Performance.MaxWorkersAsync)
	}
	if cfg.Performance.LLMChunkSize != 70000 {
		t.Errorf("LLMChunkSize = %d, want 70000", cfg.Performance.LLMChunkSize)
	}
	if cfg.Paths.Intermediate != "data/intermediate" {
		t.Errorf("Intermediate = %s, want data/intermediate", cfg.Paths.Intermediate)
	}
	if cfg.Run.StartIndex != 1 {
		t.Errorf("StartIndex = %d, want 1", cfg.Run.StartIndex)
	}
	if len(cfg.Styles) == 0 {
		t.Error("Styles should default to the built-in set")
	}
	if len(cfg.Providers) != len(DefaultProviders()) {
		t.Errorf("Providers = %d, want %d", len(cfg.Providers), len(DefaultProviders()))
	}
}

func TestEffectiveConcurrency(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		limit     int
		want      int
	}{
		{"no limit", 8, 0, 8},
		{"limit below request", 8, 5, 5},
		{"limit above request", 3, 5, 3},
		{"serialized provider", 10, 1, 1},
		{"zero request", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveConcurrency(tt.requested, tt.limit); got != tt.want {
				t.Errorf("EffectiveConcurrency() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	p, err := cfg.Lookup("zai/glm-4.7-flash", KindLLM)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if p.MaxConcurrency != 1 {
		t.Errorf("MaxConcurrency = %d, want 1", p.MaxConcurrency)
	}

	p, err = cfg.Lookup("deepseek/deepseek-v3.2", KindLLM)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if p.ModelName != "deepseek-chat" {
		t.Errorf("ModelName = %s, want deepseek-chat", p.ModelName)
	}

	if _, err := cfg.Lookup("missing", KindASR); !errors.Is(err, ErrInvalid) {
		t.Errorf("Lookup() error = %v, want ErrInvalid", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
paths:
  output: out
performance:
  max_workers_processes: 2
styles:
  - name: Short
    prompt: "Shorten this in [Language]: "
run:
  run_phase_1: true
  language: Vietnamese
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "k1, k2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Performance.MaxWorkersProcesses != 2 {
		t.Errorf("MaxWorkersProcesses = %d, want 2", cfg.Performance.MaxWorkersProcesses)
	}
	if names := cfg.StyleNames(); len(names) != 1 || names[0] != "Short" {
		t.Errorf("StyleNames() = %v, want [Short]", names)
	}
	if cfg.Run.Language != "Vietnamese" {
		t.Errorf("Language = %s, want Vietnamese", cfg.Run.Language)
	}
	if cfg.APIKeys.OpenAI != "sk-test" {
		t.Errorf("OpenAI key = %q, want sk-test", cfg.APIKeys.OpenAI)
	}
	if len(cfg.APIKeys.Gemini) != 2 || cfg.APIKeys.Gemini[1] != "k2" {
		t.Errorf("Gemini keys = %v, want [k1 k2]", cfg.APIKeys.Gemini)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestSelectStyles(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	got, err := cfg.SelectStyles([]string{"Summary", "Educational"})
	if err != nil {
		t.Fatalf("SelectStyles() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "Summary" {
		t.Errorf("SelectStyles() = %v", got)
	}

	if _, err := cfg.SelectStyles([]string{"Nope"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("SelectStyles() error = %v, want ErrInvalid", err)
	}
}
