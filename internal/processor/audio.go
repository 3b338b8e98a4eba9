package processor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	altManifestMetadata = regexp.MustCompile(`&altManifestMetadata=.*?&pretranscode=0`)
)

// extractAudio pulls a mono 16kHz MP3 out of a media file or stream URL.
func (p *implProcessor) extractAudio(ctx context.Context, input, audioPath string) (string, error) {
	p.logger.Info(ctx, "Extracting audio: %s", shorten(input))

	// -vn: no video; -ar 16000 -ac 1: speech models need nothing more
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", input,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "libmp3lame",
		"-b:a", "64k",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.settings.FFmpegBinary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}

// CleanManifestURL drops metadata ffmpeg cannot use and forces hybrid playback.
func CleanManifestURL(url string) string {
	cleaned := altManifestMetadata.ReplaceAllString(url, "&pretranscode=0")
	return strings.ReplaceAll(cleaned, "&hybridPlayback=false", "&hybridPlayback=true")
}

func shorten(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
