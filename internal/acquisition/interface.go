package acquisition

import (
	"context"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
)

// Dispatcher runs one job somewhere and reports its result. Implementations
// never return errors: every failure becomes a result.
type Dispatcher interface {
	Dispatch(ctx context.Context, job domain.Job) domain.AcquisitionResult
}

// Coordinator fans a job queue out over a bounded pool of dispatch slots.
type Coordinator interface {
	Run(ctx context.Context, jobs []domain.Job) Outcome
}

// Outcome holds one result per submitted job, in job order.
type Outcome struct {
	Results []domain.AcquisitionResult
	// TranscriptJobs maps each written transcript file to the job that produced it.
	TranscriptJobs map[string]int
}

// ByTitle indexes results by job title. Later duplicates win.
func (o Outcome) ByTitle() map[string]domain.AcquisitionResult {
	m := make(map[string]domain.AcquisitionResult, len(o.Results))
	for _, r := range o.Results {
		m[r.VideoTitle] = r
	}
	return m
}

// Count returns how many results have status s.
func (o Outcome) Count(s domain.Status) int {
	n := 0
	for _, r := range o.Results {
		if r.Status == s {
			n++
		}
	}
	return n
}
