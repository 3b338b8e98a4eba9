package refiner

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/bodhiflow/internal/metadata"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want block
	}{
		{"blank", "", block{kind: blockSkip}},
		{"rule", "---", block{kind: blockSkip}},
		{"table separator", "|---|:--|", block{kind: blockSkip}},
		{"heading", "## Key points", block{kind: blockHeading, level: 2, text: "Key points"}},
		{"bullet", "- **Go** is fast", block{kind: blockBullet, text: "**Go** is fast"}},
		{"quote", "> said once", block{kind: blockQuote, text: "said once"}},
		{"table row", "| a | b |", block{kind: blockText, text: "a\tb"}},
		{"text", "plain words", block{kind: blockText, text: "plain words"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyLine(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("classifyLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDocxHeader(t *testing.T) {
	tests := []struct {
		name string
		meta metadata.Record
		want string
	}{
		{"all fields", metadata.Record{Style: "Summary", Author: "Chan", PublishedAt: "2024-01-01T00:00:00Z"}, "Summary | Chan | 2024-01-01T00:00:00Z"},
		{"style only", metadata.Record{Style: "Summary"}, "Summary"},
		{"nothing", metadata.Record{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := docxHeader(tt.meta); got != tt.want {
				t.Errorf("docxHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Talk [Summary].docx")
	meta := metadata.Record{Title: "Talk", Style: "Summary", Description: "A **short** talk"}

	if err := writeDocx(meta, "# Intro\n\n- point\n\n| a | b |", path); err != nil {
		t.Fatalf("writeDocx() error = %v", err)
	}
	if !storage.Exists(path) {
		t.Error("writeDocx() wrote no file")
	}
}
