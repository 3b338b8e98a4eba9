package podcast

import (
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
)

const userAgent = "Mozilla/5.0 (compatible; bodhiflow/0.2)"

type implClient struct {
	parser *gofeed.Parser
	http   *http.Client
	log    logger.Logger
}

// New creates a feed client. A nil httpClient gets a client with a 30 minute timeout.
func New(httpClient *http.Client, log logger.Logger) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Minute}
	}
	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = userAgent
	return &implClient{
		parser: parser,
		http:   httpClient,
		log:    log,
	}
}
