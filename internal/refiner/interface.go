package refiner

import (
	"context"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
)

// Refiner runs refinement tasks and writes one Markdown file per success.
type Refiner interface {
	Run(ctx context.Context, tasks []domain.RefinementTask) Outcome
}

// Outcome holds one result per task, in task order.
type Outcome struct {
	Results []domain.RefinementResult
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

// ByID indexes results by task identity.
func (o Outcome) ByID() map[domain.TaskID]domain.RefinementResult {
	m := make(map[domain.TaskID]domain.RefinementResult, len(o.Results))
	for _, r := range o.Results {
		m[domain.TaskID{VideoTitle: r.VideoTitle, StyleName: r.StyleName}] = r
	}
	return m
}

// Settings configures a refinement run. Workers is already capped by the provider.
type Settings struct {
	Workers             int
	ChunkSize           int
	Language            string
	IntermediateDir     string
	MetadataEnhancement bool
	SkipExisting        bool
	DocxExport          bool
}
