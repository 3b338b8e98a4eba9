package asr

import "context"

// Transcriber turns an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Settings selects and configures the ASR backend. It travels to worker processes as JSON.
type Settings struct {
	Provider     string `json:"provider"`
	ModelName    string `json:"model_name"`
	BaseURL      string `json:"base_url,omitempty"`
	APIKey       string `json:"api_key,omitempty"`
	ChunkSeconds int    `json:"chunk_seconds,omitempty"`

	FFmpegBinary  string `json:"ffmpeg_binary"`
	WhisperBinary string `json:"whisper_binary,omitempty"`
	WhisperModel  string `json:"whisper_model,omitempty"`
	Threads       int    `json:"threads,omitempty"`
}
