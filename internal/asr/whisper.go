package asr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
)

type whisperBackend struct {
	settings Settings
	exec     executor.Executor
	logger   logger.Logger
}

// transcribePiece runs whisper.cpp with plain text output next to the piece.
func (w *whisperBackend) transcribePiece(ctx context.Context, path string) (string, error) {
	outputPrefix := strings.TrimSuffix(path, filepath.Ext(path))

	threads := w.settings.Threads
	if threads <= 0 {
		threads = 4
	}

	// -otxt: plain text; -l auto: detect the spoken language per piece
	args := []string{
		"-m", w.settings.WhisperModel,
		"-f", path,
		"-otxt",
		"-l", "auto",
		"-t", strconv.Itoa(threads),
		"-np",
		"--output-file", outputPrefix,
	}

	binary := w.settings.WhisperBinary
	if binary == "" {
		binary = "whisper-cli"
	}
	if _, err := w.exec.Execute(ctx, binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	os.Remove(txtPath)

	w.logger.Debug(ctx, "Whisper transcribed %s (%d chars)", filepath.Base(path), len(data))
	return string(data), nil
}
