package domain

import "fmt"

// SourceType identifies how a job's raw text is acquired.
type SourceType string

const (
	SourceYouTube      SourceType = "youtube_url"
	SourceTeamsMeeting SourceType = "teams_meeting_url"
	SourceLocalFile    SourceType = "local_file"
	SourcePodcastAudio SourceType = "podcast_audio"
	SourceTextDocument SourceType = "text_document"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceYouTube, SourceTeamsMeeting, SourceLocalFile, SourcePodcastAudio, SourceTextDocument:
		return true
	default:
		return false
	}
}

// Status is the terminal state of one job or task.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailure   Status = "failure"
	StatusCancelled Status = "cancelled"
	StatusSkipped   Status = "skipped"
)

// Job is one acquisition unit. JobID is 0 for single-input runs and 1..N for batch rows.
type Job struct {
	SourcePath    string     `json:"source_path"`
	SourceType    SourceType `json:"source_type"`
	OriginalTitle string     `json:"original_title"`
	JobID         int        `json:"job_id"`

	Channel     string   `json:"channel,omitempty"`
	UploadDate  string   `json:"upload_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
}

// AcquisitionResult is produced exactly once per submitted job.
type AcquisitionResult struct {
	Status         Status `json:"status"`
	VideoTitle     string `json:"video_title"`
	TranscriptFile string `json:"transcript_file,omitempty"`
	TranscriptText string `json:"transcript_text,omitempty"`
	Error          string `json:"error,omitempty"`
	JobID          int    `json:"job_id"`
}

// AcquisitionFailure builds a failure result for job.
func AcquisitionFailure(job Job, status Status, err string) AcquisitionResult {
	return AcquisitionResult{
		Status:     status,
		VideoTitle: job.OriginalTitle,
		Error:      err,
		JobID:      job.JobID,
	}
}

// RefinementTask is one (transcript, style) pair. Immutable once built.
type RefinementTask struct {
	TranscriptFile string `json:"transcript_file"`
	StyleName      string `json:"style_name"`
	StylePrompt    string `json:"style_prompt"`
	OutputFile     string `json:"output_file"`
	VideoTitle     string `json:"video_title"`
	Language       string `json:"language,omitempty"`
}

// ID is the run-unique identity of the task.
func (t RefinementTask) ID() TaskID {
	return TaskID{VideoTitle: t.VideoTitle, StyleName: t.StyleName}
}

// TaskID keys refinement results.
type TaskID struct {
	VideoTitle string
	StyleName  string
}

func (id TaskID) String() string {
	return fmt.Sprintf("%s [%s]", id.VideoTitle, id.StyleName)
}

// RefinementResult mirrors AcquisitionResult for one task.
type RefinementResult struct {
	Status     Status `json:"status"`
	VideoTitle string `json:"video_title"`
	StyleName  string `json:"style_name"`
	OutputFile string `json:"output_file"`
	Error      string `json:"error,omitempty"`
}

// Style is a named prompt template.
type Style struct {
	Name   string `yaml:"name"`
	Prompt string `yaml:"prompt"`
}
