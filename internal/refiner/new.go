package refiner

import (
	"github.com/nguyentantai21042004/bodhiflow/internal/llm"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"golang.org/x/sync/semaphore"
)

type implRefiner struct {
	settings Settings
	caller   llm.Caller
	enricher *enricher
	reporter status.Reporter
	logger   logger.Logger
	sem      *semaphore.Weighted
}

// New creates a Refiner. metaCaller may be nil, which disables enrichment.
func New(s Settings, caller, metaCaller llm.Caller, reporter status.Reporter, log logger.Logger) Refiner {
	if s.Workers < 1 {
		s.Workers = 1
	}
	if s.Language == "" {
		s.Language = "English"
	}

	r := &implRefiner{
		settings: s,
		caller:   caller,
		reporter: reporter,
		logger:   log,
		sem:      semaphore.NewWeighted(int64(s.Workers)),
	}
	if s.MetadataEnhancement && metaCaller != nil {
		r.enricher = newEnricher(metaCaller, log)
	}
	return r
}
