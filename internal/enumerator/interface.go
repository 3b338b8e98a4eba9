package enumerator

import (
	"context"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/podcast"
	"github.com/nguyentantai21042004/bodhiflow/internal/youtube"
)

// Enumerator expands input descriptors into an ordered job queue.
// It only reads transcript storage, never writes it.
type Enumerator interface {
	Enumerate(ctx context.Context, inputs []Input, opts Options) Result
}

// Input is one descriptor to expand. JobID is 0 for single runs, 1..N for batch rows.
type Input struct {
	Path  string
	JobID int
}

type Options struct {
	StartIndex int
	EndIndex   int
	// ExistingTitles holds safe titles of stored transcripts. Non-nil enables resume skipping.
	ExistingTitles map[string]bool
	// FolderHint disambiguates directories: FolderDocuments or media (default).
	FolderHint string
	Recursive  bool
}

type Result struct {
	Jobs    []domain.Job
	Skipped int
}

// VideoSource is the yt-dlp subset the enumerator needs.
type VideoSource interface {
	PlaylistURLs(ctx context.Context, url string) ([]string, error)
	Metadata(ctx context.Context, url string) (youtube.Meta, error)
}

// FeedSource is the podcast subset the enumerator needs.
type FeedSource interface {
	Feed(ctx context.Context, url string) (podcast.Feed, error)
}
