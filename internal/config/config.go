package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks configuration errors. They are fatal and surface before any stage runs.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	YtDlp       YtDlpConfig       `yaml:"ytdlp"`
	ASR         ASRConfig         `yaml:"asr"`
	LLM         LLMConfig         `yaml:"llm"`
	APIKeys     APIKeysConfig     `yaml:"api_keys"`
	Providers   []Provider        `yaml:"providers"`
	Styles      []domain.Style    `yaml:"styles"`
	Run         RunConfig         `yaml:"run"`
}

type PathsConfig struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Intermediate string `yaml:"intermediate"`
	Temp         string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxWorkersProcesses int `yaml:"max_workers_processes"`
	MaxWorkersAsync     int `yaml:"max_workers_async"`
	LLMChunkSize        int `yaml:"llm_chunk_size"`
	MaxConcurrentRuns   int `yaml:"max_concurrent_runs"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	Binary string `yaml:"binary"`
}

type YtDlpConfig struct {
	Binary     string `yaml:"binary"`
	CookieFile string `yaml:"cookie_file"`
}

type ASRConfig struct {
	Model string `yaml:"model"`
}

type LLMConfig struct {
	Model               string `yaml:"model"`
	MetadataModel       string `yaml:"metadata_model"`
	MetadataEnhancement bool   `yaml:"metadata_enhancement"`
	MaxAttempts         int    `yaml:"max_attempts"`
}

type APIKeysConfig struct {
	Gemini   []string `yaml:"gemini" json:"gemini,omitempty"`
	OpenAI   string   `yaml:"openai" json:"openai,omitempty"`
	DeepSeek string   `yaml:"deepseek" json:"deepseek,omitempty"`
	ZAI      string   `yaml:"zai" json:"zai,omitempty"`
}

// RunConfig holds per-run switches. CLI flags override these.
type RunConfig struct {
	RunPhase1           bool   `yaml:"run_phase_1"`
	RunPhase2           bool   `yaml:"run_phase_2"`
	Resume              bool   `yaml:"resume"`
	SkipExisting        bool   `yaml:"skip_existing"`
	DisableAITranscribe bool   `yaml:"disable_ai_transcribe"`
	SaveMedia           bool   `yaml:"save_media"`
	DocxExport          bool   `yaml:"docx_export"`
	Language            string `yaml:"language"`
	StartIndex          int    `yaml:"start_index"`
	EndIndex            int    `yaml:"end_index"`
}

// Load reads a YAML config file, applies environment overrides and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv fills empty API keys from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if len(c.APIKeys.Gemini) == 0 {
		for _, k := range strings.Split(getenv("GEMINI_API_KEY"), ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.APIKeys.Gemini = append(c.APIKeys.Gemini, k)
			}
		}
	}
	if c.APIKeys.OpenAI == "" {
		c.APIKeys.OpenAI = getenv("OPENAI_API_KEY")
	}
	if c.APIKeys.DeepSeek == "" {
		c.APIKeys.DeepSeek = getenv("DEEPSEEK_API_KEY")
	}
	if c.APIKeys.ZAI == "" {
		c.APIKeys.ZAI = getenv("ZAI_API_KEY")
	}
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("%w: paths.output is required", ErrInvalid)
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Intermediate == "" {
		c.Paths.Intermediate = "data/intermediate"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxWorkersProcesses <= 0 {
		c.Performance.MaxWorkersProcesses = 4
	}
	if c.Performance.MaxWorkersAsync <= 0 {
		c.Performance.MaxWorkersAsync = 10
	}
	if c.Performance.LLMChunkSize <= 0 {
		c.Performance.LLMChunkSize = 70000
	}
	if c.Performance.MaxConcurrentRuns <= 0 {
		c.Performance.MaxConcurrentRuns = 1
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = "yt-dlp"
	}
	if c.ASR.Model == "" {
		c.ASR.Model = "openai/gpt-4o-transcribe"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "zai/glm-4.7-flash"
	}
	if c.LLM.MetadataModel == "" {
		c.LLM.MetadataModel = "openai/gpt-5-nano"
	}
	if c.LLM.MaxAttempts <= 0 {
		c.LLM.MaxAttempts = 3
	}
	if c.Run.Language == "" {
		c.Run.Language = "English"
	}
	if c.Run.StartIndex <= 0 {
		c.Run.StartIndex = 1
	}
	if c.Run.EndIndex < 0 {
		return fmt.Errorf("%w: run.end_index must not be negative", ErrInvalid)
	}
	if c.Run.EndIndex > 0 && c.Run.EndIndex < c.Run.StartIndex {
		return fmt.Errorf("%w: run.end_index %d is before run.start_index %d", ErrInvalid, c.Run.EndIndex, c.Run.StartIndex)
	}

	if len(c.Providers) == 0 {
		c.Providers = DefaultProviders()
	}
	if err := c.validateProviders(); err != nil {
		return err
	}
	if len(c.Styles) == 0 {
		c.Styles = DefaultStyles()
	}
	if err := c.validateStyles(); err != nil {
		return err
	}

	if _, err := c.Lookup(c.ASR.Model, KindASR); err != nil {
		return err
	}
	if _, err := c.Lookup(c.LLM.Model, KindLLM); err != nil {
		return err
	}
	if _, err := c.Lookup(c.LLM.MetadataModel, KindLLM); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateStyles() error {
	seen := make(map[string]bool, len(c.Styles))
	for i, s := range c.Styles {
		if s.Name == "" {
			return fmt.Errorf("%w: styles[%d].name is required", ErrInvalid, i)
		}
		if s.Prompt == "" {
			return fmt.Errorf("%w: style %q has an empty prompt", ErrInvalid, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate style %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Style returns the configured style with the given name.
func (c *Config) Style(name string) (domain.Style, bool) {
	for _, s := range c.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return domain.Style{}, false
}

// StyleNames lists configured styles in declaration order.
func (c *Config) StyleNames() []string {
	names := make([]string, 0, len(c.Styles))
	for _, s := range c.Styles {
		names = append(names, s.Name)
	}
	return names
}

// SelectStyles resolves names to styles, failing on the first unknown name.
func (c *Config) SelectStyles(names []string) ([]domain.Style, error) {
	out := make([]domain.Style, 0, len(names))
	for _, n := range names {
		s, ok := c.Style(n)
		if !ok {
			return nil, fmt.Errorf("%w: unknown style %q", ErrInvalid, n)
		}
		out = append(out, s)
	}
	return out, nil
}
