package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()

	out, err := exec.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want hello", out)
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	exec := New()

	_, err := exec.Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Execute() error = %v, want stderr in message", err)
	}
}

func TestExecuteInDir(t *testing.T) {
	dir := t.TempDir()
	exec := New()

	out, err := exec.ExecuteInDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("ExecuteInDir() = %q, want %q", out, dir)
	}
}

func TestExecuteWithInput(t *testing.T) {
	exec := NewWithEnv("GREETING=hi")

	out, err := exec.ExecuteWithInput(context.Background(), strings.NewReader("payload"), "sh", "-c", `printf "%s " "$GREETING"; cat`)
	if err != nil {
		t.Fatalf("ExecuteWithInput() error = %v", err)
	}
	if out != "hi payload" {
		t.Errorf("ExecuteWithInput() = %q, want %q", out, "hi payload")
	}
}

func TestLastLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "a\nb", 5, "a\nb"},
		{"trimmed", "a\nb\nc\nd", 2, "c\nd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastLines(tt.in, tt.n); got != tt.want {
				t.Errorf("lastLines() = %q, want %q", got, tt.want)
			}
		})
	}
}
