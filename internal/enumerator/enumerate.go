package enumerator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

// ApplyRange slices items with a 1-based inclusive start; end 0 means through the end.
func ApplyRange[T any](items []T, start, end int) []T {
	if start < 1 {
		start = 1
	}
	if start > len(items) {
		return []T{}
	}
	if end > 0 {
		if end > len(items) {
			end = len(items)
		}
		if end < start {
			return []T{}
		}
		return items[start-1 : end]
	}
	return items[start-1:]
}

func (e *implEnumerator) Enumerate(ctx context.Context, inputs []Input, opts Options) Result {
	e.status.Report(ctx, status.Info, "Expanding input sources...")

	if len(inputs) == 1 && inputs[0].JobID == 0 && strings.TrimSpace(inputs[0].Path) == NoInput {
		e.status.Report(ctx, status.Info, "Phase 2 only: no input to expand")
		return Result{Jobs: []domain.Job{}}
	}

	q := &queue{opts: opts, status: e.status, ctx: ctx}
	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		path := strings.TrimSpace(in.Path)
		if path == "" {
			continue
		}
		e.expand(ctx, q, path, in.JobID)
	}

	if opts.ExistingTitles != nil {
		if q.skipped > 0 {
			e.status.Report(ctx, status.Info, "Resume mode: skipped %d source(s) with existing transcripts", q.skipped)
		}
		if len(q.jobs) == 0 {
			e.status.Report(ctx, status.Warning, "Resume mode: no sources left to retry")
		}
	}
	e.status.Report(ctx, status.Success, "Found %d source(s) to process", len(q.jobs))

	jobs := q.jobs
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return Result{Jobs: jobs, Skipped: q.skipped}
}

func (e *implEnumerator) expand(ctx context.Context, q *queue, path string, jobID int) {
	hint := ""
	if jobID == 0 {
		hint = q.opts.FolderHint
	}

	switch kind := Classify(path, hint); kind {
	case KindYouTubePlaylist:
		urls, err := e.videos.PlaylistURLs(ctx, path)
		if err != nil || len(urls) == 0 {
			e.status.Report(ctx, status.Warning, "No videos found in playlist (job %d): %v", jobID, err)
			return
		}
		urls = ApplyRange(urls, q.opts.StartIndex, q.opts.EndIndex)
		e.status.Report(ctx, status.Info, "Found %d videos in playlist (job %d)", len(urls), jobID)
		for _, u := range urls {
			e.addVideo(ctx, q, u, jobID)
		}

	case KindYouTubeVideo:
		e.addVideo(ctx, q, path, jobID)

	case KindTeamsMeeting:
		e.status.Report(ctx, status.Info, "Detected Teams meeting manifest URL")
		q.add(domain.Job{
			SourcePath:    path,
			SourceType:    domain.SourceTeamsMeeting,
			OriginalTitle: TeamsTitle(path),
			JobID:         jobID,
		})

	case KindPodcastFeed:
		feed, err := e.feeds.Feed(ctx, path)
		if err != nil || len(feed.Episodes) == 0 {
			e.status.Report(ctx, status.Error, "No episodes found in podcast feed (job %d): %v", jobID, err)
			return
		}
		episodes := ApplyRange(feed.Episodes, q.opts.StartIndex, q.opts.EndIndex)
		e.status.Report(ctx, status.Info, "Found %d episodes in podcast: %s", len(episodes), feed.Title)
		for _, ep := range episodes {
			q.add(domain.Job{
				SourcePath:    ep.AudioURL,
				SourceType:    domain.SourcePodcastAudio,
				OriginalTitle: ep.Title,
				JobID:         jobID,
				Channel:       feed.Author,
				UploadDate:    ep.PubDate,
				Duration:      ep.Duration,
				Description:   ep.Description,
			})
		}

	case KindMediaFolder, KindDocumentFolder:
		keep, sourceType, recursive := IsMediaFile, domain.SourceLocalFile, false
		if kind == KindDocumentFolder {
			keep, sourceType, recursive = IsDocumentFile, domain.SourceTextDocument, q.opts.Recursive
		}
		files, err := listFiles(path, recursive, keep)
		if err != nil {
			e.status.Report(ctx, status.Error, "Cannot list folder %s: %v", path, err)
			return
		}
		for _, f := range ApplyRange(files, q.opts.StartIndex, q.opts.EndIndex) {
			q.add(domain.Job{SourcePath: f, SourceType: sourceType, OriginalTitle: stem(f), JobID: jobID})
		}

	case KindMediaFile:
		q.add(domain.Job{SourcePath: path, SourceType: domain.SourceLocalFile, OriginalTitle: stem(path), JobID: jobID})

	case KindTextFile:
		q.add(domain.Job{SourcePath: path, SourceType: domain.SourceTextDocument, OriginalTitle: stem(path), JobID: jobID})

	case KindWebpage:
		q.add(domain.Job{SourcePath: path, SourceType: domain.SourceTextDocument, OriginalTitle: webpageTitle(path), JobID: jobID})

	default:
		e.status.Report(ctx, status.Error, "Unsupported input (job %d): %s", jobID, truncate(path, 50))
	}
}

func (e *implEnumerator) addVideo(ctx context.Context, q *queue, url string, jobID int) {
	meta, err := e.videos.Metadata(ctx, url)
	if err != nil {
		e.log.Warn(ctx, "Metadata lookup failed for %s: %v", url, err)
	}
	title := meta.Title
	if title == "" {
		title = url
	}
	q.add(domain.Job{
		SourcePath:    url,
		SourceType:    domain.SourceYouTube,
		OriginalTitle: title,
		JobID:         jobID,
		Channel:       meta.Channel,
		UploadDate:    meta.UploadDate,
		Tags:          meta.Tags,
		Duration:      meta.Duration,
		Description:   meta.Description,
	})
}

type queue struct {
	ctx     context.Context
	opts    Options
	status  status.Reporter
	jobs    []domain.Job
	skipped int
}

// add appends job unless resume mode already has its transcript.
func (q *queue) add(job domain.Job) {
	if q.opts.ExistingTitles != nil && q.opts.ExistingTitles[storage.SafeTitle(job.OriginalTitle)] {
		q.status.Report(q.ctx, status.Skip, "Skipping (resume mode): %s - transcript already exists", job.OriginalTitle)
		q.skipped++
		return
	}
	q.jobs = append(q.jobs, job)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
