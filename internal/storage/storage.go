package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	TranscriptSuffix = "_raw_transcript.txt"
	MetaSuffix       = ".meta.json"
	AudioSuffix      = "_source_audio"
)

// TranscriptPath is {dir}/{safe_title}_raw_transcript.txt.
func TranscriptPath(dir, title string) string {
	return filepath.Join(dir, SafeTitle(title)+TranscriptSuffix)
}

// MetaPath is {dir}/{safe_title}.meta.json.
func MetaPath(dir, title string) string {
	return filepath.Join(dir, SafeTitle(title)+MetaSuffix)
}

// OutputPath is {dir}/{title} [{safe_style}].md. title is already a safe title.
func OutputPath(dir, title, style string) string {
	return filepath.Join(dir, fmt.Sprintf("%s [%s].md", title, SafeStyleName(style)))
}

// TitleFromTranscript recovers the safe title from a transcript file name.
func TitleFromTranscript(path string) string {
	return strings.TrimSuffix(filepath.Base(path), TranscriptSuffix)
}

// SaveRawTranscript writes content under the safe title and returns the path.
func SaveRawTranscript(content, title, dir string) (string, error) {
	path := TranscriptPath(dir, title)
	if err := WriteFile(path, content); err != nil {
		return "", fmt.Errorf("save raw transcript: %w", err)
	}
	return path, nil
}

func LoadRawTranscript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load raw transcript: %w", err)
	}
	return string(data), nil
}

// DiscoverTranscripts lists transcript files in dir, sorted. A missing dir yields none.
func DiscoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read intermediate dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), TranscriptSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ExistingTitles returns the safe titles of every stored transcript.
func ExistingTitles(dir string) (map[string]bool, error) {
	files, err := DiscoverTranscripts(dir)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]bool, len(files))
	for _, f := range files {
		titles[TitleFromTranscript(f)] = true
	}
	return titles, nil
}

// WriteFile writes content, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v as 2-space indented JSON.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return WriteFile(path, string(data))
}

// ReadJSON decodes path into v. found is false when the file does not exist.
func ReadJSON(path string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read json: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("parse json %s: %w", path, err)
	}
	return true, nil
}

// UniquePath returns {dir}/{safe}{suffix}{ext}, adding _2, _3... until the name is free.
func UniquePath(dir, safe, suffix, ext string) string {
	path := filepath.Join(dir, safe+suffix+ext)
	for n := 2; fileExists(path); n++ {
		path = filepath.Join(dir, safe+suffix+"_"+strconv.Itoa(n)+ext)
	}
	return path
}

// MoveFile renames src to dst, copying across filesystems when needed.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return os.Remove(src)
}

func Exists(path string) bool {
	return fileExists(path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
