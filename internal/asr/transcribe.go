package asr

import (
	"context"
	"fmt"
	"strings"
)

func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	pieces, cleanup, err := t.segment(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("segment audio: %w", err)
	}
	defer cleanup()

	t.logger.Info(ctx, "Transcribing %d segment(s) with %s/%s", len(pieces), t.settings.Provider, t.settings.ModelName)

	var parts []string
	for i, piece := range pieces {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := t.backend.transcribePiece(ctx, piece)
		if err != nil {
			return "", fmt.Errorf("transcribe segment %d/%d: %w", i+1, len(pieces), err)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	joined := strings.Join(parts, "\n\n")
	if joined == "" {
		return "", fmt.Errorf("transcription returned no text")
	}
	return joined, nil
}
