package processor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/metadata"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

// Acquire runs the strategy for the job's source type and stores the transcript
// and its metadata sidecar.
func (p *implProcessor) Acquire(ctx context.Context, job domain.Job) (result domain.AcquisitionResult) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = domain.AcquisitionFailure(job, domain.StatusFailure, fmt.Sprintf("panic: %v", r))
		}
	}()

	p.logger.Info(ctx, "Acquiring [%s] %s", job.SourceType, job.OriginalTitle)

	if err := os.MkdirAll(p.settings.TempDir, 0755); err != nil {
		return domain.AcquisitionFailure(job, domain.StatusFailure, fmt.Sprintf("create temp dir: %v", err))
	}

	text, err := p.rawText(ctx, job)
	if err != nil {
		if ctx.Err() != nil {
			return domain.AcquisitionFailure(job, domain.StatusCancelled, "cancelled")
		}
		return domain.AcquisitionFailure(job, domain.StatusFailure, failureMessage(job.SourceType, err))
	}
	if strings.TrimSpace(text) == "" {
		return domain.AcquisitionFailure(job, domain.StatusFailure, failureMessage(job.SourceType, fmt.Errorf("no text produced")))
	}

	transcriptFile, err := storage.SaveRawTranscript(text, job.OriginalTitle, p.settings.IntermediateDir)
	if err != nil {
		return domain.AcquisitionFailure(job, domain.StatusFailure, err.Error())
	}

	if _, err := metadata.Save(p.settings.IntermediateDir, job.OriginalTitle, p.metadataFor(job, time.Now())); err != nil {
		p.logger.Warn(ctx, "Failed to save metadata for %s: %v", job.OriginalTitle, err)
	}

	p.logger.Info(ctx, "Acquired %s (%d chars) in %s", job.OriginalTitle, len(text), time.Since(startTime).Round(time.Millisecond))
	return domain.AcquisitionResult{
		Status:         domain.StatusSuccess,
		VideoTitle:     job.OriginalTitle,
		TranscriptFile: transcriptFile,
		TranscriptText: text,
		JobID:          job.JobID,
	}
}

func (p *implProcessor) rawText(ctx context.Context, job domain.Job) (string, error) {
	switch job.SourceType {
	case domain.SourceYouTube:
		return p.acquireYouTube(ctx, job)
	case domain.SourceLocalFile:
		return p.acquireLocalFile(ctx, job)
	case domain.SourceTeamsMeeting:
		return p.acquireTeamsMeeting(ctx, job)
	case domain.SourcePodcastAudio:
		return p.acquirePodcast(ctx, job)
	case domain.SourceTextDocument:
		return p.acquireDocument(ctx, job)
	default:
		return "", fmt.Errorf("unsupported source type %q", job.SourceType)
	}
}

func (p *implProcessor) metadataFor(job domain.Job, now time.Time) metadata.Record {
	return metadata.Normalize(string(job.SourceType), metadata.Record{
		Title:       job.OriginalTitle,
		SourceURL:   job.SourcePath,
		Author:      job.Channel,
		PublishedAt: job.UploadDate,
		Language:    p.settings.Language,
		Description: job.Description,
		Tags:        job.Tags,
		Duration:    job.Duration,
	}, now)
}

func failureMessage(sourceType domain.SourceType, err error) string {
	if sourceType == domain.SourceTextDocument {
		return fmt.Sprintf("Failed to extract text from document: %v", err)
	}
	return fmt.Sprintf("Failed to extract transcript from source: %v", err)
}
