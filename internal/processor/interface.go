package processor

import (
	"context"

	"github.com/nguyentantai21042004/bodhiflow/internal/asr"
	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
)

// Processor acquires raw text for one job. It never returns an error or panics:
// every failure is reported through the result status.
type Processor interface {
	Acquire(ctx context.Context, job domain.Job) domain.AcquisitionResult
}

// Settings is the per-run bundle a worker process needs. It is serialized as JSON.
type Settings struct {
	TempDir             string `json:"temp_dir"`
	IntermediateDir     string `json:"intermediate_dir"`
	Language            string `json:"language"`
	DisableAITranscribe bool   `json:"disable_ai_transcribe"`
	SaveMedia           bool   `json:"save_media"`
	FFmpegBinary        string `json:"ffmpeg_binary"`
	YtDlpBinary         string `json:"ytdlp_binary"`
	CookieFile          string `json:"cookie_file,omitempty"`
	LogLevel            string `json:"log_level"`

	ASR asr.Settings `json:"asr"`
}
