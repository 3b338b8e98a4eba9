package asr

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
	openai "github.com/sashabaranov/go-openai"
)

const defaultChunkSeconds = 600

// backend transcribes one audio piece.
type backend interface {
	transcribePiece(ctx context.Context, path string) (string, error)
}

type implTranscriber struct {
	settings Settings
	exec     executor.Executor
	logger   logger.Logger
	backend  backend
}

// New builds a Transcriber that segments audio with ffmpeg and sends each
// piece to the configured provider.
func New(s Settings, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	if s.ChunkSeconds <= 0 {
		s.ChunkSeconds = defaultChunkSeconds
	}
	if s.FFmpegBinary == "" {
		s.FFmpegBinary = "ffmpeg"
	}

	t := &implTranscriber{
		settings: s,
		exec:     exec,
		logger:   log,
	}

	switch s.Provider {
	case config.ProviderWhisperCpp:
		if s.WhisperModel == "" {
			return nil, fmt.Errorf("whisper model path is required")
		}
		t.backend = &whisperBackend{settings: s, exec: exec, logger: log}
	case config.ProviderOpenAI, config.ProviderZAI:
		if s.APIKey == "" {
			return nil, fmt.Errorf("%s api key is required for transcription", s.Provider)
		}
		cfg := openai.DefaultConfig(s.APIKey)
		if s.BaseURL != "" {
			cfg.BaseURL = s.BaseURL
		}
		t.backend = &openAIBackend{client: openai.NewClientWithConfig(cfg), model: s.ModelName}
	default:
		return nil, fmt.Errorf("unsupported asr provider %q", s.Provider)
	}

	return t, nil
}
