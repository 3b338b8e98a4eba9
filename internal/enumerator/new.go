package enumerator

import (
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
)

type implEnumerator struct {
	videos VideoSource
	feeds  FeedSource
	status status.Reporter
	log    logger.Logger
}

// New creates an Enumerator.
func New(videos VideoSource, feeds FeedSource, reporter status.Reporter, log logger.Logger) Enumerator {
	return &implEnumerator{
		videos: videos,
		feeds:  feeds,
		status: reporter,
		log:    log,
	}
}
