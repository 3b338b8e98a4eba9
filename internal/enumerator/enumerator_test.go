package enumerator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/podcast"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"github.com/nguyentantai21042004/bodhiflow/internal/youtube"
)

type fakeVideos struct {
	playlist []string
	titles   map[string]string
}

func (f *fakeVideos) PlaylistURLs(ctx context.Context, url string) ([]string, error) {
	if f.playlist == nil {
		return nil, errors.New("not a playlist")
	}
	return f.playlist, nil
}

func (f *fakeVideos) Metadata(ctx context.Context, url string) (youtube.Meta, error) {
	if t, ok := f.titles[url]; ok {
		return youtube.Meta{Title: t, Channel: "chan"}, nil
	}
	return youtube.Meta{}, errors.New("no metadata")
}

type fakeFeeds struct {
	feed podcast.Feed
}

func (f *fakeFeeds) Feed(ctx context.Context, url string) (podcast.Feed, error) {
	return f.feed, nil
}

func newTestEnumerator(videos *fakeVideos, feeds *fakeFeeds) Enumerator {
	log := logger.Nop()
	return New(videos, feeds, status.New(log, nil), log)
}

func tenVideos() *fakeVideos {
	v := &fakeVideos{titles: map[string]string{}}
	for i := 1; i <= 10; i++ {
		u := "https://youtu.be/v" + string(rune('0'+i-1))
		v.playlist = append(v.playlist, u)
		v.titles[u] = "Video " + string(rune('0'+i-1))
	}
	return v
}

func TestApplyRange(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"start 3 to end", 3, 0, []int{3, 4, 5, 6, 7, 8, 9, 10}},
		{"start 3 end 5", 3, 5, []int{3, 4, 5}},
		{"single first", 1, 1, []int{1}},
		{"end past length", 9, 20, []int{9, 10}},
		{"start past length", 11, 0, []int{}},
		{"end before start", 5, 3, []int{}},
		{"zero start behaves as 1", 0, 2, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyRange(items, tt.start, tt.end); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyRange(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "talk.mp4")
	doc := filepath.Join(dir, "notes.md")
	os.WriteFile(media, []byte("x"), 0644)
	os.WriteFile(doc, []byte("x"), 0644)

	tests := []struct {
		name  string
		input string
		hint  string
		want  Kind
	}{
		{"youtube video", "https://www.youtube.com/watch?v=abc", "", KindYouTubeVideo},
		{"youtu.be", "https://youtu.be/abc", "", KindYouTubeVideo},
		{"youtube playlist", "https://youtube.com/playlist?list=PL1", "", KindYouTubePlaylist},
		{"teams", "https://eu-prod.asyncgw.teams.microsoft.com/v1/videomanifest?provider=spo&docid=x", "", KindTeamsMeeting},
		{"teams wrong provider", "https://x.mediap.svc.ms/videomanifest?provider=other", "", KindWebpage},
		{"podcast", "https://feeds.simplecast.com/abc", "", KindPodcastFeed},
		{"podcast xml", "https://example.com/podcast.xml", "", KindPodcastFeed},
		{"media file", media, "", KindMediaFile},
		{"document file", doc, "", KindTextFile},
		{"media folder", dir, "", KindMediaFolder},
		{"document folder", dir, FolderDocuments, KindDocumentFolder},
		{"webpage", "https://example.com/blog/post", "", KindWebpage},
		{"unknown", "not/a/real/path.mp4", "", KindUnknown},
		{"empty", "  ", "", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input, tt.hint); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTeamsTitle(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"correlation id", "https://x.teams.microsoft.com/videomanifest?provider=spo&correlationId=0123456789abcdef", "Teams Meeting 0123456789ab"},
		{"docid", "https://x.teams.microsoft.com/videomanifest?provider=spo&docid=https%3A%2F%2Fa%2Fb%2Fmeeting.mp4", "meeting.mp4"},
		{"fallback", "https://x.teams.microsoft.com/videomanifest?provider=spo", "Teams Meeting"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeamsTitle(tt.url); got != tt.want {
				t.Errorf("TeamsTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnumeratePlaylistRange(t *testing.T) {
	e := newTestEnumerator(tenVideos(), &fakeFeeds{})

	res := e.Enumerate(context.Background(),
		[]Input{{Path: "https://youtube.com/playlist?list=PL1"}},
		Options{StartIndex: 3, EndIndex: 5})

	if len(res.Jobs) != 3 {
		t.Fatalf("Jobs = %d, want 3", len(res.Jobs))
	}
	if res.Jobs[0].OriginalTitle != "Video 2" || res.Jobs[2].OriginalTitle != "Video 4" {
		t.Errorf("Jobs = %+v", res.Jobs)
	}
	for _, j := range res.Jobs {
		if j.SourceType != domain.SourceYouTube || j.Channel != "chan" || j.JobID != 0 {
			t.Errorf("job = %+v", j)
		}
	}
}

func TestEnumerateIsIdempotent(t *testing.T) {
	e := newTestEnumerator(tenVideos(), &fakeFeeds{})
	inputs := []Input{{Path: "https://youtube.com/playlist?list=PL1", JobID: 1}, {Path: "https://youtu.be/v0", JobID: 2}}
	opts := Options{StartIndex: 2}

	first := e.Enumerate(context.Background(), inputs, opts)
	second := e.Enumerate(context.Background(), inputs, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Enumerate() not idempotent:\n%+v\n%+v", first, second)
	}
	if len(first.Jobs) != 10 {
		t.Errorf("Jobs = %d, want 10", len(first.Jobs))
	}
}

func TestEnumerateResumeSkip(t *testing.T) {
	videos := &fakeVideos{titles: map[string]string{
		"https://youtu.be/a": "Talk_A",
		"https://youtu.be/c": "Talk_C",
	}}
	e := newTestEnumerator(videos, &fakeFeeds{})

	res := e.Enumerate(context.Background(),
		[]Input{{Path: "https://youtu.be/a", JobID: 1}, {Path: "https://youtu.be/c", JobID: 2}},
		Options{StartIndex: 1, ExistingTitles: map[string]bool{"Talk_A": true, "Talk_B": true}})

	if len(res.Jobs) != 1 || res.Jobs[0].OriginalTitle != "Talk_C" {
		t.Fatalf("Jobs = %+v, want only Talk_C", res.Jobs)
	}
	if res.Jobs[0].JobID != 2 {
		t.Errorf("JobID = %d, want 2 (skips must not renumber)", res.Jobs[0].JobID)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
}

func TestEnumeratePlaceholderAndUnknown(t *testing.T) {
	e := newTestEnumerator(&fakeVideos{}, &fakeFeeds{})

	res := e.Enumerate(context.Background(), []Input{{Path: NoInput}}, Options{StartIndex: 1})
	if res.Jobs == nil || len(res.Jobs) != 0 {
		t.Errorf("placeholder Jobs = %v, want empty", res.Jobs)
	}

	res = e.Enumerate(context.Background(), []Input{{Path: "bogus-input"}, {Path: "https://youtu.be/x"}}, Options{StartIndex: 1})
	if len(res.Jobs) != 1 || res.Jobs[0].OriginalTitle != "https://youtu.be/x" {
		t.Errorf("Jobs = %+v, want unknown input dropped and URL fallback title", res.Jobs)
	}
}

func TestEnumeratePodcast(t *testing.T) {
	feeds := &fakeFeeds{feed: podcast.Feed{Title: "Pod", Author: "Host", Episodes: []podcast.Episode{
		{Title: "Ep1", AudioURL: "https://x/1.mp3", Duration: "60"},
		{Title: "Ep2", AudioURL: "https://x/2.mp3"},
	}}}
	e := newTestEnumerator(&fakeVideos{}, feeds)

	res := e.Enumerate(context.Background(), []Input{{Path: "https://feeds.example.com/pod"}}, Options{StartIndex: 2})
	if len(res.Jobs) != 1 {
		t.Fatalf("Jobs = %d, want 1", len(res.Jobs))
	}
	j := res.Jobs[0]
	if j.SourceType != domain.SourcePodcastAudio || j.SourcePath != "https://x/2.mp3" || j.Channel != "Host" {
		t.Errorf("job = %+v", j)
	}
}

func TestEnumerateFolders(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp4", "notes.txt", "skip.bin"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	os.MkdirAll(filepath.Join(dir, "sub"), 0755)
	os.WriteFile(filepath.Join(dir, "sub", "deep.md"), []byte("x"), 0644)

	e := newTestEnumerator(&fakeVideos{}, &fakeFeeds{})

	media := e.Enumerate(context.Background(), []Input{{Path: dir}}, Options{StartIndex: 1})
	if len(media.Jobs) != 2 || media.Jobs[0].OriginalTitle != "a" || media.Jobs[0].SourceType != domain.SourceLocalFile {
		t.Errorf("media Jobs = %+v", media.Jobs)
	}

	docs := e.Enumerate(context.Background(), []Input{{Path: dir}}, Options{StartIndex: 1, FolderHint: FolderDocuments, Recursive: true})
	if len(docs.Jobs) != 2 || docs.Jobs[0].SourceType != domain.SourceTextDocument {
		t.Errorf("document Jobs = %+v", docs.Jobs)
	}
}
