package podcast

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
  <title>Deep Talks</title>
  <itunes:author>Host Name</itunes:author>
  <item>
    <title>First</title>
    <description>One</description>
    <pubDate>Fri, 15 Mar 2024 10:20:30 +0000</pubDate>
    <itunes:duration>3600</itunes:duration>
    <enclosure url="%s/ep1.mp3" type="audio/mpeg" length="3"/>
  </item>
  <item>
    <title>No audio</title>
    <link>https://example.com/post</link>
  </item>
  <item>
    <title>Second</title>
    <enclosure url="%s/ep2.m4a" type="" length="3"/>
  </item>
</channel>
</rss>`

func newServer(t *testing.T) *httptest.Server {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			fmt.Fprintf(w, rss, srv.URL, srv.URL)
		case "/ep1.mp3":
			w.Write([]byte("mp3"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeed(t *testing.T) {
	srv := newServer(t)
	c := New(srv.Client(), logger.Nop())

	feed, err := c.Feed(context.Background(), srv.URL+"/feed.xml")
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if feed.Title != "Deep Talks" || feed.Author != "Host Name" {
		t.Errorf("Feed() = %+v", feed)
	}
	if len(feed.Episodes) != 2 {
		t.Fatalf("Episodes = %d, want 2", len(feed.Episodes))
	}

	first := feed.Episodes[0]
	if first.Title != "First" || first.Duration != "3600" || first.PubDate != "2024-03-15T10:20:30Z" {
		t.Errorf("Episodes[0] = %+v", first)
	}
	if feed.Episodes[1].AudioURL != srv.URL+"/ep2.m4a" {
		t.Errorf("Episodes[1].AudioURL = %s", feed.Episodes[1].AudioURL)
	}
}

func TestDownload(t *testing.T) {
	srv := newServer(t)
	c := New(srv.Client(), logger.Nop())
	path := filepath.Join(t.TempDir(), "a", "ep.mp3")

	if err := c.Download(context.Background(), srv.URL+"/ep1.mp3", path); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "mp3" {
		t.Errorf("content = %q", data)
	}

	if err := c.Download(context.Background(), srv.URL+"/missing.mp3", path+"2"); err == nil {
		t.Error("Download() expected error on 404")
	}
}

func TestIsAudioURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://x.com/a.mp3", true},
		{"https://x.com/a.M4A?x=1", true},
		{"https://x.com/page.html", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAudioURL(tt.url); got != tt.want {
			t.Errorf("IsAudioURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
