//go:build unix

package acquisition

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/processor"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
)

func waitForPid(t *testing.T, dir string) int {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(filepath.Join(dir, "pid"))
		if err == nil && len(data) > 0 {
			pid, err := strconv.Atoi(string(data))
			if err != nil {
				t.Fatalf("bad pid %q", data)
			}
			return pid
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("worker never started")
	return 0
}

func TestProcessDispatcherSurvivesInterrupt(t *testing.T) {
	dir := t.TempDir()
	exec := executor.New(executor.WithEnv("GO_WANT_WORKER=1"), executor.WithProcessGroup())
	d := NewProcessDispatcher(exec, os.Args[0], nil, processor.Settings{LogLevel: "error"}, logger.Nop())

	done := make(chan domain.AcquisitionResult, 1)
	go func() {
		done <- d.Dispatch(context.Background(), domain.Job{SourcePath: dir, OriginalTitle: "hold", JobID: 1})
	}()

	pid := waitForPid(t, dir)

	// A terminal Ctrl+C signals the whole foreground group; the worker leads its own.
	if pgid, err := syscall.Getpgid(pid); err != nil || pgid != pid {
		t.Fatalf("worker pgid = %d (err %v), want its own group %d", pgid, err, pid)
	}
	if err := syscall.Kill(-pid, syscall.SIGINT); err != nil {
		t.Fatalf("signal worker group: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "release"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-done:
		if r.Status != domain.StatusSuccess {
			t.Errorf("Status = %s (error %q), want success after interrupt", r.Status, r.Error)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Dispatch() did not return")
	}
}

func TestProcessDispatcherForceKill(t *testing.T) {
	dir := t.TempDir()
	exec := executor.New(executor.WithEnv("GO_WANT_WORKER=1"), executor.WithProcessGroup())
	d := NewProcessDispatcher(exec, os.Args[0], nil, processor.Settings{LogLevel: "error"}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan domain.AcquisitionResult, 1)
	go func() {
		done <- d.Dispatch(ctx, domain.Job{SourcePath: dir, OriginalTitle: "hold", JobID: 1})
	}()

	waitForPid(t, dir)
	cancel()

	select {
	case r := <-done:
		if r.Status != domain.StatusCancelled {
			t.Errorf("Status = %s, want cancelled after kill", r.Status)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch() did not return after kill")
	}
}
