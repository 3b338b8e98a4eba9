package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSafeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Talk_A", "Talk_A"},
		{"illegal chars", `a/b:c?d`, "a_b_c_d"},
		{"emoji removed", "Hello 👋 World", "Hello World"},
		{"collapse whitespace", "  many   spaces\there ", "many spaces here"},
		{"trim dots", "..dots. ", "dots"},
		{"empty", "???", "___"},
		{"only removed", "👋", "unnamed"},
		{"reserved", "con", "con_file"},
		{"unicode letters", "Bài giảng số 1", "Bài giảng số 1"},
		{"brackets removed", "Title [HD] (2024)", "Title HD 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeTitle(tt.title); got != tt.want {
				t.Errorf("SafeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSafeTitleTruncates(t *testing.T) {
	got := SafeTitle(strings.Repeat("word ", 40))
	if utf8.RuneCountInString(got) > maxSafeTitleLen {
		t.Errorf("SafeTitle() length = %d, want <= %d", utf8.RuneCountInString(got), maxSafeTitleLen)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("SafeTitle() = %q, should not end with a space", got)
	}
}

func TestSafeTitleStable(t *testing.T) {
	title := "My: Talk / Part 1"
	if SafeTitle(title) != SafeTitle(title) {
		t.Error("SafeTitle() is not deterministic")
	}
	if SafeTitle(SafeTitle(title)) != SafeTitle(title) {
		t.Error("SafeTitle() is not idempotent")
	}
}

func TestSafeStyleName(t *testing.T) {
	if got := SafeStyleName("Q&A Generation"); got != "Q_A_Generation" {
		t.Errorf("SafeStyleName() = %q, want Q_A_Generation", got)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("out", "Talk_A", "Balanced and Detailed")
	want := filepath.Join("out", "Talk_A [Balanced_and_Detailed].md")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveRawTranscript("hello", "Talk: A", dir)
	if err != nil {
		t.Fatalf("SaveRawTranscript() error = %v", err)
	}
	if filepath.Base(path) != "Talk_ A_raw_transcript.txt" {
		t.Errorf("path = %s", path)
	}

	got, err := LoadRawTranscript(path)
	if err != nil || got != "hello" {
		t.Errorf("LoadRawTranscript() = %q, %v", got, err)
	}
	if TitleFromTranscript(path) != "Talk_ A" {
		t.Errorf("TitleFromTranscript() = %q", TitleFromTranscript(path))
	}
}

func TestDiscoverAndExistingTitles(t *testing.T) {
	dir := t.TempDir()
	for _, title := range []string{"Talk_B", "Talk_A"} {
		if _, err := SaveRawTranscript("x", title, dir); err != nil {
			t.Fatal(err)
		}
	}
	if err := WriteFile(filepath.Join(dir, "Talk_A.meta.json"), "{}"); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverTranscripts(dir)
	if err != nil {
		t.Fatalf("DiscoverTranscripts() error = %v", err)
	}
	if len(files) != 2 || TitleFromTranscript(files[0]) != "Talk_A" {
		t.Errorf("DiscoverTranscripts() = %v", files)
	}

	titles, err := ExistingTitles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !titles["Talk_A"] || !titles["Talk_B"] || titles["Talk_C"] {
		t.Errorf("ExistingTitles() = %v", titles)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	files, err := DiscoverTranscripts(filepath.Join(t.TempDir(), "none"))
	if err != nil || len(files) != 0 {
		t.Errorf("DiscoverTranscripts() = %v, %v, want empty", files, err)
	}
}

func TestJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.json")

	if err := WriteJSON(path, map[string]string{"title": "x"}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  \"title\"") {
		t.Errorf("WriteJSON() = %s, want 2-space indent", data)
	}

	var got map[string]string
	found, err := ReadJSON(path, &got)
	if !found || err != nil || got["title"] != "x" {
		t.Errorf("ReadJSON() = %v, %v, %v", got, found, err)
	}

	found, err = ReadJSON(filepath.Join(dir, "missing.json"), &got)
	if found || err != nil {
		t.Errorf("ReadJSON() missing = %v, %v", found, err)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "a", AudioSuffix, ".mp3")
	if filepath.Base(first) != "a_source_audio.mp3" {
		t.Errorf("UniquePath() = %s", first)
	}
	if err := WriteFile(first, "x"); err != nil {
		t.Fatal(err)
	}

	second := UniquePath(dir, "a", AudioSuffix, ".mp3")
	if filepath.Base(second) != "a_source_audio_2.mp3" {
		t.Errorf("UniquePath() = %s, want _2 suffix", second)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.wav")
	dst := filepath.Join(dir, "sub", "dst.wav")
	if err := WriteFile(src, "audio"); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}
	if Exists(src) || !Exists(dst) {
		t.Error("MoveFile() did not move the file")
	}
}
