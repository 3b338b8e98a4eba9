package podcast

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

var audioExtensions = []string{".mp3", ".m4a", ".wav", ".aac", ".ogg", ".flac", ".mp4"}

func (c *implClient) Feed(ctx context.Context, url string) (Feed, error) {
	parsed, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return Feed{}, fmt.Errorf("parse feed: %w", err)
	}
	return convertFeed(parsed), nil
}

func convertFeed(parsed *gofeed.Feed) Feed {
	f := Feed{Title: strings.TrimSpace(parsed.Title)}
	if parsed.ITunesExt != nil && parsed.ITunesExt.Author != "" {
		f.Author = parsed.ITunesExt.Author
	} else if len(parsed.Authors) > 0 && parsed.Authors[0] != nil {
		f.Author = parsed.Authors[0].Name
	}

	for i, item := range parsed.Items {
		audio := audioURL(item)
		if audio == "" {
			continue
		}

		ep := Episode{
			Title:       strings.TrimSpace(item.Title),
			AudioURL:    audio,
			Description: strings.TrimSpace(item.Description),
		}
		if ep.Title == "" {
			ep.Title = fmt.Sprintf("Episode %d", i+1)
		}
		if item.PublishedParsed != nil {
			ep.PubDate = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else {
			ep.PubDate = item.Published
		}
		if item.ITunesExt != nil {
			ep.Duration = item.ITunesExt.Duration
		}
		f.Episodes = append(f.Episodes, ep)
	}
	return f
}

func audioURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.Contains(strings.ToLower(enc.Type), "audio") || IsAudioURL(enc.URL) {
			return enc.URL
		}
	}
	if IsAudioURL(item.Link) {
		return item.Link
	}
	return ""
}

// IsAudioURL reports whether url names a known audio container.
func IsAudioURL(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range audioExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

func (c *implClient) Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("download episode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download episode: unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write episode: %w", err)
	}
	if n == 0 {
		os.Remove(path)
		return fmt.Errorf("download episode: empty body")
	}

	c.log.Debug(ctx, "Downloaded %d bytes to %s", n, path)
	return nil
}
