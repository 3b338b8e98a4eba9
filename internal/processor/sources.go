package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

func (p *implProcessor) acquireYouTube(ctx context.Context, job domain.Job) (string, error) {
	text, subErr := p.videos.Subtitles(ctx, job.SourcePath, p.settings.TempDir, p.settings.Language)
	if subErr == nil {
		p.logger.Info(ctx, "Using published subtitles for %s", job.OriginalTitle)
		return text, nil
	}
	if p.settings.DisableAITranscribe {
		return "", fmt.Errorf("no transcript available and AI transcription is disabled (%v)", subErr)
	}
	if err := p.requireASR(); err != nil {
		return "", err
	}

	p.logger.Info(ctx, "No subtitles for %s (%v), falling back to speech recognition", job.OriginalTitle, subErr)
	audio, err := p.videos.DownloadAudio(ctx, job.SourcePath, p.settings.TempDir, storage.SafeTitle(job.OriginalTitle)+"_audio")
	if err != nil {
		return "", fmt.Errorf("failed to download YouTube audio (video may be private or restricted, try a cookie file): %w", err)
	}
	return p.transcribeAndRelease(ctx, job, audio)
}

func (p *implProcessor) acquireLocalFile(ctx context.Context, job domain.Job) (string, error) {
	if err := p.requireASR(); err != nil {
		return "", err
	}
	audio, err := p.extractAudio(ctx, job.SourcePath, p.tempAudioPath(job))
	if err != nil {
		return "", err
	}
	return p.transcribeAndRelease(ctx, job, audio)
}

func (p *implProcessor) acquireTeamsMeeting(ctx context.Context, job domain.Job) (string, error) {
	if err := p.requireASR(); err != nil {
		return "", err
	}
	audio, err := p.extractAudio(ctx, CleanManifestURL(job.SourcePath), p.tempAudioPath(job))
	if err != nil {
		return "", fmt.Errorf("download Teams meeting: %w", err)
	}
	return p.transcribeAndRelease(ctx, job, audio)
}

func (p *implProcessor) acquirePodcast(ctx context.Context, job domain.Job) (string, error) {
	if err := p.requireASR(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(strings.SplitN(job.SourcePath, "?", 2)[0]))
	if ext == "" || len(ext) > 5 {
		ext = ".mp3"
	}
	audio := filepath.Join(p.settings.TempDir, storage.SafeTitle(job.OriginalTitle)+"_audio"+ext)

	if err := p.podcasts.Download(ctx, job.SourcePath, audio); err != nil {
		return "", fmt.Errorf("failed to download podcast audio: %w", err)
	}
	return p.transcribeAndRelease(ctx, job, audio)
}

func (p *implProcessor) requireASR() error {
	if p.asr == nil {
		if p.asrErr != nil {
			return fmt.Errorf("speech recognition unavailable: %w", p.asrErr)
		}
		return fmt.Errorf("speech recognition unavailable")
	}
	return nil
}

// transcribeAndRelease runs ASR, then keeps or deletes the audio.
func (p *implProcessor) transcribeAndRelease(ctx context.Context, job domain.Job, audio string) (string, error) {
	defer p.releaseAudio(ctx, job, audio)

	text, err := p.asr.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("ASR failed: %w", err)
	}
	return text, nil
}

func (p *implProcessor) tempAudioPath(job domain.Job) string {
	return filepath.Join(p.settings.TempDir, storage.SafeTitle(job.OriginalTitle)+"_audio.mp3")
}
