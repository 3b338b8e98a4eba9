package youtube

import "context"

// Client wraps yt-dlp.
type Client interface {
	// PlaylistURLs lists video URLs of a playlist in playlist order.
	PlaylistURLs(ctx context.Context, url string) ([]string, error)
	// Metadata returns descriptive fields for a single video.
	Metadata(ctx context.Context, url string) (Meta, error)
	// Subtitles downloads the best subtitle track into dir and returns it as plain text.
	Subtitles(ctx context.Context, url, dir, language string) (string, error)
	// DownloadAudio saves the audio track into dir as {stem}.mp3 and returns its path.
	DownloadAudio(ctx context.Context, url, dir, stem string) (string, error)
}

// Meta is the subset of yt-dlp's info JSON the pipeline keeps.
type Meta struct {
	Title       string
	Channel     string
	UploadDate  string
	Tags        []string
	Duration    string
	Description string
}
