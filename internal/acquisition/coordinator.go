package acquisition

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"golang.org/x/sync/errgroup"
)

const phaseName = "acquisition"

// Run dispatches every job and waits for the pool to drain. Cancelling ctx
// stops new dispatches; jobs already running finish unless force kill fires.
func (c *implCoordinator) Run(ctx context.Context, jobs []domain.Job) Outcome {
	out := Outcome{
		Results:        make([]domain.AcquisitionResult, len(jobs)),
		TranscriptJobs: make(map[string]int),
	}
	if len(jobs) == 0 {
		return out
	}

	if ctx.Err() != nil {
		c.reporter.Report(ctx, status.Warning, "Acquisition cancelled before starting")
		for i, job := range jobs {
			out.Results[i] = cancelled(job)
		}
		return out
	}

	c.reporter.Report(ctx, status.Start, "Acquiring %d source(s) with %d worker(s)", len(jobs), c.workers)

	// Workers outlive ctx so a cancelled run drains instead of leaving partial files.
	workCtx, kill := context.WithCancel(context.WithoutCancel(ctx))
	defer kill()
	stopKillTimer := c.armForceKill(ctx, kill)
	defer stopKillTimer()

	var (
		mu        sync.Mutex
		completed int
	)
	record := func(i int, r domain.AcquisitionResult) {
		mu.Lock()
		defer mu.Unlock()
		out.Results[i] = r
		if r.Status == domain.StatusSuccess && r.TranscriptFile != "" {
			out.TranscriptJobs[r.TranscriptFile] = r.JobID
		}
		completed++
		c.reporter.Progress(ctx, phaseName, completed, len(jobs))
	}

	var g errgroup.Group
	g.SetLimit(c.workers)

	for i, job := range jobs {
		if ctx.Err() != nil {
			record(i, cancelled(job))
			continue
		}

		// Blocks until a slot frees up.
		g.Go(func() error {
			if ctx.Err() != nil {
				record(i, cancelled(job))
				return nil
			}

			r := c.dispatcher.Dispatch(workCtx, job)
			if workCtx.Err() != nil && r.Status != domain.StatusSuccess {
				r = cancelled(job)
			}
			c.reportResult(ctx, r)
			record(i, r)
			return nil
		})
	}

	_ = g.Wait()

	if ctx.Err() != nil {
		c.reporter.Report(ctx, status.Warning, "Acquisition cancelled: %d/%d source(s) processed before cancellation",
			len(jobs)-out.Count(domain.StatusCancelled), len(jobs))
	} else {
		c.reporter.Report(ctx, status.Finish, "Acquisition complete: %d/%d source(s) succeeded",
			out.Count(domain.StatusSuccess), len(jobs))
	}
	return out
}

// armForceKill calls kill once ctx is cancelled and the grace window passes.
func (c *implCoordinator) armForceKill(ctx context.Context, kill context.CancelFunc) func() {
	if c.forceKillAfter <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		timer := time.NewTimer(c.forceKillAfter)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			c.logger.Warn(ctx, "Workers still running %s after cancellation, terminating", c.forceKillAfter)
			kill()
		}
	}()
	return func() { close(done) }
}

func (c *implCoordinator) reportResult(ctx context.Context, r domain.AcquisitionResult) {
	switch r.Status {
	case domain.StatusSuccess:
		c.reporter.Report(ctx, status.Success, "✓ %s: transcript saved", r.VideoTitle)
	case domain.StatusCancelled:
		c.reporter.Report(ctx, status.Warning, "%s: cancelled", r.VideoTitle)
	default:
		c.reporter.Report(ctx, status.Error, "✗ %s: %s", r.VideoTitle, r.Error)
	}
}

func cancelled(job domain.Job) domain.AcquisitionResult {
	return domain.AcquisitionFailure(job, domain.StatusCancelled, "cancelled before start")
}
