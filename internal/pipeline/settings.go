package pipeline

import (
	"github.com/nguyentantai21042004/bodhiflow/internal/asr"
	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/processor"
	"github.com/nguyentantai21042004/bodhiflow/internal/refiner"
)

// ProcessorSettings is the bundle each acquisition worker receives for a run.
func ProcessorSettings(cfg *config.Config, tempDir string) (processor.Settings, error) {
	p, err := cfg.Lookup(cfg.ASR.Model, config.KindASR)
	if err != nil {
		return processor.Settings{}, err
	}
	return processor.Settings{
		TempDir:             tempDir,
		IntermediateDir:     cfg.Paths.Intermediate,
		Language:            cfg.Run.Language,
		DisableAITranscribe: cfg.Run.DisableAITranscribe,
		SaveMedia:           cfg.Run.SaveMedia,
		FFmpegBinary:        cfg.FFmpeg.Binary,
		YtDlpBinary:         cfg.YtDlp.Binary,
		CookieFile:          cfg.YtDlp.CookieFile,
		LogLevel:            cfg.Logging.Level,
		ASR: asr.Settings{
			Provider:      p.Provider,
			ModelName:     p.ModelName,
			BaseURL:       p.BaseURL,
			APIKey:        cfg.APIKeys.APIKey(p.Provider),
			ChunkSeconds:  p.MaxChunkDurationSeconds,
			FFmpegBinary:  cfg.FFmpeg.Binary,
			WhisperBinary: cfg.Whisper.BinaryPath,
			WhisperModel:  cfg.Whisper.ModelPath,
			Threads:       cfg.Whisper.Threads,
		},
	}, nil
}

// AcquisitionWorkers caps the configured process count by the ASR provider limit.
func AcquisitionWorkers(cfg *config.Config) (int, error) {
	p, err := cfg.Lookup(cfg.ASR.Model, config.KindASR)
	if err != nil {
		return 0, err
	}
	return config.EffectiveConcurrency(cfg.Performance.MaxWorkersProcesses, p.MaxConcurrency), nil
}

// RefinerSettings caps the configured async count by the refinement provider limit.
func RefinerSettings(cfg *config.Config) (refiner.Settings, error) {
	p, err := cfg.Lookup(cfg.LLM.Model, config.KindLLM)
	if err != nil {
		return refiner.Settings{}, err
	}
	return refiner.Settings{
		Workers:             config.EffectiveConcurrency(cfg.Performance.MaxWorkersAsync, p.MaxConcurrency),
		ChunkSize:           cfg.Performance.LLMChunkSize,
		Language:            cfg.Run.Language,
		IntermediateDir:     cfg.Paths.Intermediate,
		MetadataEnhancement: cfg.LLM.MetadataEnhancement,
		SkipExisting:        cfg.Run.SkipExisting,
		DocxExport:          cfg.Run.DocxExport,
	}, nil
}
