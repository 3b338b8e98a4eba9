package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

const (
	PipelineVersion = "bodhiflow-0.2"
	maxTags         = 5
)

// Record is the sidecar stored next to each raw transcript.
type Record struct {
	Title           string   `json:"title" yaml:"title,omitempty"`
	SourceType      string   `json:"source_type" yaml:"source_type,omitempty"`
	SourceURL       string   `json:"source_url" yaml:"source_url,omitempty"`
	Author          string   `json:"author" yaml:"author,omitempty"`
	PublishedAt     string   `json:"published_at" yaml:"published_at,omitempty"`
	FetchedAt       string   `json:"fetched_at" yaml:"fetched_at,omitempty"`
	Language        string   `json:"language" yaml:"language,omitempty"`
	Style           string   `json:"style,omitempty" yaml:"style,omitempty"`
	Description     string   `json:"description" yaml:"description,omitempty"`
	Tags            []string `json:"tags" yaml:"tags,omitempty"`
	Duration        string   `json:"duration" yaml:"duration,omitempty"`
	TranscriptChars int      `json:"transcript_chars,omitempty" yaml:"transcript_chars,omitempty"`
	ModelUsed       string   `json:"model_used,omitempty" yaml:"model_used,omitempty"`
	PipelineVersion string   `json:"pipeline_version" yaml:"pipeline_version,omitempty"`
}

// Normalize fills defaults and canonicalizes dates, tags and duration.
func Normalize(sourceType string, r Record, now time.Time) Record {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = "Untitled"
	}
	r.SourceType = sourceType
	r.Description = strings.TrimSpace(r.Description)
	if r.PipelineVersion == "" {
		r.PipelineVersion = PipelineVersion
	}

	if r.PublishedAt != "" {
		r.PublishedAt = ToISO8601(r.PublishedAt, now)
	}
	if r.FetchedAt == "" {
		r.FetchedAt = formatUTC(now)
	} else {
		r.FetchedAt = ToISO8601(r.FetchedAt, now)
	}

	r.Tags = NormalizeTags(r.Tags)
	r.Duration = NormalizeDuration(r.Duration)
	return r
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ToISO8601 accepts yyyymmdd or common ISO forms and returns UTC with a Z
// suffix. Unparseable input falls back to now.
func ToISO8601(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if len(s) == 8 && isDigits(s) {
		if t, err := time.Parse("20060102", s); err == nil {
			return formatUTC(t)
		}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatUTC(t)
		}
	}
	return formatUTC(now)
}

func formatUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// NormalizeTags lowercases, hyphenates, dedupes and keeps the first five.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t)), " ", "-")
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	if len(out) > maxTags {
		out = out[:maxTags]
	}
	return out
}

// NormalizeDuration turns a seconds count into HH:MM:SS and leaves other values alone.
func NormalizeDuration(d string) string {
	d = strings.TrimSpace(d)
	secs, err := strconv.ParseFloat(d, 64)
	if err != nil || secs < 0 {
		return d
	}
	total := int(secs)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Fill sets description and tags only where the record has none.
func Fill(r Record, description string, tags []string) Record {
	if r.Description == "" {
		r.Description = strings.TrimSpace(description)
	}
	if len(r.Tags) == 0 {
		r.Tags = NormalizeTags(tags)
	}
	return r
}

// NeedsEnrichment reports whether description or tags are missing.
func (r Record) NeedsEnrichment() bool {
	return r.Description == "" || len(r.Tags) == 0
}

// Save writes the sidecar for title into dir.
func Save(dir, title string, r Record) (string, error) {
	path := storage.MetaPath(dir, title)
	if err := storage.WriteJSON(path, r); err != nil {
		return "", fmt.Errorf("save metadata: %w", err)
	}
	return path, nil
}

// Load reads the sidecar for title. A missing sidecar yields a minimal record.
func Load(dir, title string) (Record, error) {
	var r Record
	found, err := storage.ReadJSON(storage.MetaPath(dir, title), &r)
	if err != nil {
		return Record{}, fmt.Errorf("load metadata: %w", err)
	}
	if !found {
		return Record{Title: title, SourceType: "unknown"}, nil
	}
	return r, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
