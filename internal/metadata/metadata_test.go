package metadata

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestToISO8601(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"yyyymmdd", "20240315", "2024-03-15T00:00:00Z"},
		{"rfc3339 z", "2024-03-15T10:20:30Z", "2024-03-15T10:20:30Z"},
		{"offset converted to utc", "2024-03-15T10:20:30+02:00", "2024-03-15T08:20:30Z"},
		{"date only", "2024-03-15", "2024-03-15T00:00:00Z"},
		{"rss date", "Fri, 15 Mar 2024 10:20:30 +0000", "2024-03-15T10:20:30Z"},
		{"garbage falls back to now", "yesterday-ish", "2026-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToISO8601(tt.in, fixedNow); got != tt.want {
				t.Errorf("ToISO8601(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"lowercase and hyphenate", []string{"Machine Learning", "AI"}, []string{"machine-learning", "ai"}},
		{"dedupe", []string{"go", "Go", " go "}, []string{"go"}},
		{"max five", []string{"a", "b", "c", "d", "e", "f"}, []string{"a", "b", "c", "d", "e"}},
		{"skip empty", []string{"", "  ", "x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3725", "01:02:05"},
		{"59.9", "00:00:59"},
		{"01:02:05", "01:02:05"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDuration(tt.in); got != tt.want {
			t.Errorf("NormalizeDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	r := Normalize("youtube_url", Record{
		Title:       "  Talk  ",
		PublishedAt: "20240101",
		Tags:        []string{"Go Lang"},
		Duration:    "61",
	}, fixedNow)

	if r.Title != "Talk" || r.SourceType != "youtube_url" {
		t.Errorf("Normalize() = %+v", r)
	}
	if r.PublishedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("PublishedAt = %s", r.PublishedAt)
	}
	if r.FetchedAt != "2026-01-02T03:04:05Z" {
		t.Errorf("FetchedAt = %s", r.FetchedAt)
	}
	if r.Duration != "00:01:01" {
		t.Errorf("Duration = %s", r.Duration)
	}
	if r.PipelineVersion != PipelineVersion {
		t.Errorf("PipelineVersion = %s", r.PipelineVersion)
	}
	if Normalize("x", Record{}, fixedNow).Title != "Untitled" {
		t.Error("empty title should become Untitled")
	}
}

func TestFillIsAdditiveOnly(t *testing.T) {
	existing := Record{Description: "original description"}

	got := Fill(existing, "a different description", []string{"New Tag"})

	if got.Description != "original description" {
		t.Errorf("Description = %q, want it untouched", got.Description)
	}
	if !reflect.DeepEqual(got.Tags, []string{"new-tag"}) {
		t.Errorf("Tags = %v, want [new-tag]", got.Tags)
	}

	tagged := Fill(Record{Tags: []string{"keep"}}, "", []string{"replace"})
	if !reflect.DeepEqual(tagged.Tags, []string{"keep"}) {
		t.Errorf("Tags = %v, want [keep]", tagged.Tags)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()

	r := Record{Title: "Talk A", SourceType: "local_file", Tags: []string{"x"}}
	path, err := Save(dir, "Talk A", r)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasSuffix(path, "Talk A.meta.json") {
		t.Errorf("path = %s", path)
	}

	got, err := Load(dir, "Talk A")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("Load() = %+v, want %+v", got, r)
	}

	missing, err := Load(dir, "Nope")
	if err != nil || missing.Title != "Nope" || missing.SourceType != "unknown" {
		t.Errorf("Load() missing = %+v, %v", missing, err)
	}
}
