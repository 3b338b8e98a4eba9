package youtube

import (
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
)

type implClient struct {
	exec       executor.Executor
	log        logger.Logger
	binary     string
	cookieFile string
}

// New creates a yt-dlp backed Client. cookieFile may be empty.
func New(exec executor.Executor, log logger.Logger, binary, cookieFile string) Client {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &implClient{
		exec:       exec,
		log:        log,
		binary:     binary,
		cookieFile: cookieFile,
	}
}
