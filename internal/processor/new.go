package processor

import (
	"context"

	"github.com/nguyentantai21042004/bodhiflow/internal/asr"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/podcast"
	"github.com/nguyentantai21042004/bodhiflow/internal/youtube"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
)

// VideoClient is the yt-dlp subset used during acquisition.
type VideoClient interface {
	Subtitles(ctx context.Context, url, dir, language string) (string, error)
	DownloadAudio(ctx context.Context, url, dir, stem string) (string, error)
}

// Downloader fetches remote audio.
type Downloader interface {
	Download(ctx context.Context, url, path string) error
}

type implProcessor struct {
	settings Settings
	executor executor.Executor
	logger   logger.Logger
	videos   VideoClient
	podcasts Downloader
	asr      asr.Transcriber
	// asrErr is reported by jobs that need speech recognition when the backend could not be built.
	asrErr error
}

// New creates a Processor from explicit collaborators. transcriber may be nil
// when asrErr explains why.
func New(s Settings, exec executor.Executor, log logger.Logger, videos VideoClient, podcasts Downloader, transcriber asr.Transcriber, asrErr error) Processor {
	if s.FFmpegBinary == "" {
		s.FFmpegBinary = "ffmpeg"
	}
	return &implProcessor{
		settings: s,
		executor: exec,
		logger:   log,
		videos:   videos,
		podcasts: podcasts,
		asr:      transcriber,
		asrErr:   asrErr,
	}
}

// NewFromSettings wires the production collaborators. Worker processes use it.
func NewFromSettings(s Settings, exec executor.Executor, log logger.Logger) Processor {
	if s.ASR.FFmpegBinary == "" {
		s.ASR.FFmpegBinary = s.FFmpegBinary
	}
	transcriber, err := asr.New(s.ASR, exec, log)
	return New(s,
		exec,
		log,
		youtube.New(exec, log, s.YtDlpBinary, s.CookieFile),
		podcast.New(nil, log),
		transcriber,
		err,
	)
}
