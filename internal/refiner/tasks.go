package refiner

import (
	"path/filepath"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

// JobOverride is a batch row's replacement for the global selection.
type JobOverride struct {
	Styles       []domain.Style
	Language     string
	OutputSubdir string
}

// TaskInput is everything BuildTasks needs.
type TaskInput struct {
	TranscriptFiles []string
	Styles          []domain.Style
	OutputDir       string
	// TranscriptJobs maps transcript files to job ids. Unknown files belong to job 0.
	TranscriptJobs map[string]int
	Overrides      map[int]JobOverride
}

// BuildTasks expands transcripts x styles into tasks. Output paths depend only
// on title, style and output directory. Duplicate (title, style) pairs keep the first.
func BuildTasks(in TaskInput) []domain.RefinementTask {
	var tasks []domain.RefinementTask
	seen := make(map[domain.TaskID]bool)

	for _, file := range in.TranscriptFiles {
		styles := in.Styles
		outputDir := in.OutputDir
		language := ""

		if o, ok := in.Overrides[in.TranscriptJobs[file]]; ok {
			if len(o.Styles) > 0 {
				styles = o.Styles
			}
			if o.OutputSubdir != "" {
				outputDir = filepath.Join(in.OutputDir, o.OutputSubdir)
			}
			language = o.Language
		}

		title := storage.TitleFromTranscript(file)
		for _, style := range styles {
			task := domain.RefinementTask{
				TranscriptFile: file,
				StyleName:      style.Name,
				StylePrompt:    style.Prompt,
				OutputFile:     storage.OutputPath(outputDir, title, style.Name),
				VideoTitle:     title,
				Language:       language,
			}
			if seen[task.ID()] {
				continue
			}
			seen[task.ID()] = true
			tasks = append(tasks, task)
		}
	}
	return tasks
}
