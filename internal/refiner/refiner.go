package refiner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/metadata"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

const phaseName = "refinement"

// Run refines every task concurrently, at most Workers at a time. Cancelling
// ctx marks tasks still waiting for a slot as cancelled; running tasks finish.
func (r *implRefiner) Run(ctx context.Context, tasks []domain.RefinementTask) Outcome {
	out := Outcome{Results: make([]domain.RefinementResult, len(tasks))}
	if len(tasks) == 0 {
		return out
	}

	if ctx.Err() != nil {
		r.reporter.Report(ctx, status.Warning, "Refinement cancelled before starting")
		for i, t := range tasks {
			out.Results[i] = result(t, domain.StatusCancelled, "cancelled by user")
		}
		return out
	}

	r.reporter.Report(ctx, status.Start, "Refining %d task(s) with %s, %d at a time", len(tasks), r.caller.Model(), r.settings.Workers)

	workCtx := context.WithoutCancel(ctx)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	record := func(i int, res domain.RefinementResult) {
		mu.Lock()
		defer mu.Unlock()
		out.Results[i] = res
		completed++
		r.reporter.Progress(ctx, phaseName, completed, len(tasks))
	}

	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record(i, r.runTask(ctx, workCtx, task))
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		r.reporter.Report(ctx, status.Warning, "Refinement cancelled: %d/%d refinement(s) processed before cancellation",
			out.Count(domain.StatusSuccess)+out.Count(domain.StatusFailure), len(tasks))
	} else {
		r.reporter.Report(ctx, status.Finish, "Refinement complete: %d/%d refinement(s) completed successfully",
			out.Count(domain.StatusSuccess), len(tasks))
	}
	return out
}

func (r *implRefiner) runTask(ctx, workCtx context.Context, task domain.RefinementTask) domain.RefinementResult {
	if r.settings.SkipExisting && storage.Exists(task.OutputFile) {
		r.reporter.Report(ctx, status.Skip, "%s: output exists, skipping", task.ID())
		return result(task, domain.StatusSkipped, "")
	}

	if ctx.Err() != nil {
		return result(task, domain.StatusCancelled, "cancelled by user")
	}
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return result(task, domain.StatusCancelled, "cancelled by user")
	}
	defer r.sem.Release(1)
	if ctx.Err() != nil {
		return result(task, domain.StatusCancelled, "cancelled by user")
	}

	if err := r.refine(workCtx, task); err != nil {
		r.reporter.Report(ctx, status.Error, "✗ %s: %v", task.ID(), err)
		return result(task, domain.StatusFailure, err.Error())
	}

	r.reporter.Report(ctx, status.Success, "✓ %s: refinement completed", task.ID())
	return result(task, domain.StatusSuccess, "")
}

// refine loads, refines, decorates and saves one task. Panics become errors.
func (r *implRefiner) refine(ctx context.Context, task domain.RefinementTask) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	raw, err := storage.LoadRawTranscript(task.TranscriptFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("transcript %s is empty", task.TranscriptFile)
	}

	language := task.Language
	if language == "" {
		language = r.settings.Language
	}

	body, err := RefineText(ctx, r.caller, raw, task.StylePrompt, language, r.settings.ChunkSize)
	if err != nil {
		return err
	}

	meta, err := metadata.Load(r.settings.IntermediateDir, task.VideoTitle)
	if err != nil {
		r.logger.Warn(ctx, "Ignoring unreadable metadata for %s: %v", task.VideoTitle, err)
		meta = metadata.Record{Title: task.VideoTitle, SourceType: "unknown"}
	}
	if r.enricher != nil && meta.NeedsEnrichment() {
		add := r.enricher.infer(ctx, task.TranscriptFile, raw, language)
		meta = metadata.Fill(meta, add.Description, add.Tags)
	}
	meta.Style = task.StyleName
	meta.ModelUsed = r.caller.Model()
	if meta.TranscriptChars == 0 {
		meta.TranscriptChars = utf8.RuneCountInString(raw)
	}

	fm, err := metadata.BuildFrontMatter(meta)
	if err != nil {
		return err
	}
	if err := storage.WriteFile(task.OutputFile, fm+"\n"+body); err != nil {
		return err
	}

	if r.settings.DocxExport {
		docxPath := strings.TrimSuffix(task.OutputFile, ".md") + ".docx"
		if err := writeDocx(meta, body, docxPath); err != nil {
			r.logger.Warn(ctx, "DOCX export failed for %s: %v", task.ID(), err)
		}
	}
	return nil
}

func result(t domain.RefinementTask, s domain.Status, errMsg string) domain.RefinementResult {
	return domain.RefinementResult{
		Status:     s,
		VideoTitle: t.VideoTitle,
		StyleName:  t.StyleName,
		OutputFile: t.OutputFile,
		Error:      errMsg,
	}
}
