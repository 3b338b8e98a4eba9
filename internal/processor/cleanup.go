package processor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

// releaseAudio moves the audio next to the transcript when media is kept,
// otherwise removes it.
func (p *implProcessor) releaseAudio(ctx context.Context, job domain.Job, audio string) {
	if !p.settings.SaveMedia {
		p.cleanupTempFile(ctx, audio)
		return
	}

	dest := storage.UniquePath(p.settings.IntermediateDir, storage.SafeTitle(job.OriginalTitle), storage.AudioSuffix, filepath.Ext(audio))
	if err := storage.MoveFile(audio, dest); err != nil {
		p.logger.Warn(ctx, "Failed to keep source audio %s: %v", audio, err)
		p.cleanupTempFile(ctx, audio)
		return
	}
	p.logger.Info(ctx, "Saved source audio: %s", dest)
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
