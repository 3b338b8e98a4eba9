package podcast

import "context"

// Client reads podcast feeds and fetches episode audio.
type Client interface {
	// Feed parses an RSS/Atom feed. Items without playable audio are dropped.
	Feed(ctx context.Context, url string) (Feed, error)
	// Download saves audio from url to path.
	Download(ctx context.Context, url, path string) error
}

type Feed struct {
	Title    string
	Author   string
	Episodes []Episode
}

type Episode struct {
	Title       string
	AudioURL    string
	Description string
	PubDate     string
	Duration    string
}
