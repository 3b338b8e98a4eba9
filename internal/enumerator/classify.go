package enumerator

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Kind is the classification of one input descriptor.
type Kind string

const (
	KindYouTubeVideo    Kind = "youtube_video_url"
	KindYouTubePlaylist Kind = "youtube_playlist_url"
	KindTeamsMeeting    Kind = "teams_meeting_url"
	KindPodcastFeed     Kind = "podcast_rss_url"
	KindTextFile        Kind = "text_file"
	KindMediaFile       Kind = "file"
	KindMediaFolder     Kind = "folder"
	KindDocumentFolder  Kind = "document_folder"
	KindWebpage         Kind = "webpage_url"
	KindUnknown         Kind = "unknown"
)

const (
	FolderMedia     = "media_folder"
	FolderDocuments = "document_folder"

	// NoInput is the placeholder used for refinement-only runs.
	NoInput = "No Input Allowed"
)

var (
	youtubeURL = regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be)`)
	httpURL    = regexp.MustCompile(`^https?://`)

	teamsHostKeywords = []string{"mediap.svc.ms", "teams.microsoft.com", "sharepoint.com", "onedrive"}

	rssIndicators = []string{
		"/rss", "/feed", ".rss", ".xml", "feeds.", "/podcast",
	}

	documentExtensions = map[string]bool{
		".txt": true, ".md": true, ".markdown": true, ".csv": true, ".json": true,
		".xml": true, ".html": true, ".htm": true, ".srt": true, ".vtt": true,
		".pdf": true, ".docx": true, ".doc": true, ".pptx": true, ".xlsx": true,
		".xls": true, ".epub": true, ".msg": true,
	}

	mediaExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".flv": true,
		".wmv": true, ".m4v": true, ".mpg": true, ".mpeg": true, ".3gp": true,
		".webm": true, ".ogv": true,
		".mp3": true, ".wav": true, ".flac": true, ".aac": true, ".ogg": true,
		".m4a": true, ".opus": true, ".wma": true, ".aiff": true, ".alac": true,
	}
)

// Classify decides how an input descriptor expands.
func Classify(input, folderHint string) Kind {
	s := strings.TrimSpace(input)
	if s == "" {
		return KindUnknown
	}

	if youtubeURL.MatchString(s) {
		if strings.Contains(s, "playlist?list=") {
			return KindYouTubePlaylist
		}
		return KindYouTubeVideo
	}
	if IsTeamsManifest(s) {
		return KindTeamsMeeting
	}
	if isPodcastFeed(s) {
		return KindPodcastFeed
	}

	if info, err := os.Stat(s); err == nil {
		if info.IsDir() {
			if folderHint == FolderDocuments {
				return KindDocumentFolder
			}
			return KindMediaFolder
		}
		if IsDocumentFile(s) {
			return KindTextFile
		}
		return KindMediaFile
	}

	if httpURL.MatchString(s) {
		return KindWebpage
	}
	return KindUnknown
}

// IsTeamsManifest matches Teams/SharePoint videomanifest URLs served by spo or onedrive.
func IsTeamsManifest(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasPrefix(u.Scheme, "http") {
		return false
	}

	host := strings.ToLower(u.Host)
	hostMatch := false
	for _, kw := range teamsHostKeywords {
		if strings.Contains(host, kw) {
			hostMatch = true
			break
		}
	}
	if !hostMatch || !strings.Contains(strings.ToLower(u.Path), "videomanifest") {
		return false
	}

	provider := strings.ToLower(u.Query().Get("provider"))
	return provider == "spo" || provider == "onedrive"
}

// TeamsTitle derives a stable meeting title from the manifest query.
func TeamsTitle(raw string) string {
	const fallback = "Teams Meeting"

	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	q := u.Query()

	for _, key := range []string{"correlationId", "correlationid"} {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			if len(v) > 12 {
				v = v[:12]
			}
			return fallback + " " + v
		}
	}

	for _, key := range []string{"docid", "docId"} {
		if v := q.Get(key); v != "" {
			parts := strings.Split(v, "/")
			candidate := strings.NewReplacer("?", "_", "=", "_").Replace(parts[len(parts)-1])
			if len(candidate) > 60 {
				candidate = candidate[:60]
			}
			if candidate = strings.TrimSpace(candidate); candidate != "" {
				return candidate
			}
		}
	}
	return fallback
}

func isPodcastFeed(s string) bool {
	if !httpURL.MatchString(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, ind := range rssIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

func IsDocumentFile(path string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(path))]
}

func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// webpageTitle is the last path segment of a URL.
func webpageTitle(raw string) string {
	trimmed := strings.Trim(raw, "/")
	parts := strings.Split(trimmed, "/")
	if t := parts[len(parts)-1]; t != "" && !strings.HasSuffix(t, ":") {
		return t
	}
	return "webpage"
}

// listFiles returns sorted absolute paths in dir accepted by keep.
func listFiles(dir string, recursive bool, keep func(string) bool) ([]string, error) {
	var files []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && keep(e.Name()) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	} else {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && keep(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}
	sort.Strings(files)
	return files, nil
}
