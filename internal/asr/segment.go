package asr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// segment converts audio to 16kHz mono WAV pieces of at most ChunkSeconds.
// The returned cleanup removes the pieces and their directory.
func (t *implTranscriber) segment(ctx context.Context, audioPath string) ([]string, func(), error) {
	dir, err := os.MkdirTemp(filepath.Dir(audioPath), "segments-*")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create segment dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	// -vn: drop video; -ar 16000 -ac 1: the format speech models expect
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-f", "segment",
		"-segment_time", strconv.Itoa(t.settings.ChunkSeconds),
		"-reset_timestamps", "1",
		"-y",
		filepath.Join(dir, "piece_%04d.wav"),
	}

	if _, err := t.exec.Execute(ctx, t.settings.FFmpegBinary, args...); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("ffmpeg segment: %w", err)
	}

	pieces, _ := filepath.Glob(filepath.Join(dir, "piece_*.wav"))
	if len(pieces) == 0 {
		cleanup()
		return nil, func() {}, fmt.Errorf("ffmpeg produced no audio segments")
	}
	sort.Strings(pieces)

	t.logger.Debug(ctx, "Split %s into %d segment(s) of %ds", filepath.Base(audioPath), len(pieces), t.settings.ChunkSeconds)
	return pieces, cleanup, nil
}
