package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

func (c *implClient) baseArgs() []string {
	args := []string{"--quiet", "--no-warnings"}
	if c.cookieFile != "" {
		args = append(args, "--cookies", c.cookieFile)
	}
	return args
}

func (c *implClient) PlaylistURLs(ctx context.Context, url string) ([]string, error) {
	args := append(c.baseArgs(), "--flat-playlist", "--print", "url", url)
	out, err := c.exec.Execute(ctx, c.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("list playlist: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "NA" {
			continue
		}
		urls = append(urls, line)
	}
	c.log.Debug(ctx, "Playlist %s has %d videos", url, len(urls))
	return urls, nil
}

type infoJSON struct {
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	Uploader    string   `json:"uploader"`
	UploadDate  string   `json:"upload_date"`
	Tags        []string `json:"tags"`
	Duration    float64  `json:"duration"`
	Description string   `json:"description"`
}

func (c *implClient) Metadata(ctx context.Context, url string) (Meta, error) {
	args := append(c.baseArgs(), "--skip-download", "--dump-json", "--no-playlist", url)
	out, err := c.exec.Execute(ctx, c.binary, args...)
	if err != nil {
		return Meta{}, fmt.Errorf("fetch metadata: %w", err)
	}
	return parseInfo([]byte(out))
}

func parseInfo(data []byte) (Meta, error) {
	var info infoJSON
	if err := json.Unmarshal(data, &info); err != nil {
		return Meta{}, fmt.Errorf("parse metadata: %w", err)
	}

	m := Meta{
		Title:       strings.TrimSpace(info.Title),
		Channel:     info.Channel,
		UploadDate:  info.UploadDate,
		Tags:        info.Tags,
		Description: info.Description,
	}
	if m.Channel == "" {
		m.Channel = info.Uploader
	}
	if info.Duration > 0 {
		m.Duration = strconv.Itoa(int(info.Duration))
	}
	return m, nil
}

func (c *implClient) Subtitles(ctx context.Context, url, dir, language string) (string, error) {
	subDir, err := os.MkdirTemp(dir, "subs-*")
	if err != nil {
		return "", fmt.Errorf("create subtitle dir: %w", err)
	}
	defer os.RemoveAll(subDir)

	args := append(c.baseArgs(),
		"--skip-download",
		"--write-subs", "--write-auto-subs",
		"--sub-langs", subLangs(language),
		"--sub-format", "vtt",
		"--convert-subs", "vtt",
		"--no-playlist",
		"-o", filepath.Join(subDir, "%(id)s.%(ext)s"),
		url,
	)
	if _, err := c.exec.Execute(ctx, c.binary, args...); err != nil {
		return "", fmt.Errorf("download subtitles: %w", err)
	}

	files, _ := filepath.Glob(filepath.Join(subDir, "*.vtt"))
	if len(files) == 0 {
		return "", fmt.Errorf("no subtitles available")
	}
	sort.Strings(files)

	data, err := os.ReadFile(files[0])
	if err != nil {
		return "", fmt.Errorf("read subtitles: %w", err)
	}

	text := CleanVTT(string(data))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("subtitles are empty")
	}
	return text, nil
}

func (c *implClient) DownloadAudio(ctx context.Context, url, dir, stem string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	args := append(c.baseArgs(),
		"-f", "bestaudio/best",
		"-x", "--audio-format", "mp3",
		"--no-playlist",
		"-o", filepath.Join(dir, stem+".%(ext)s"),
		url,
	)
	if _, err := c.exec.Execute(ctx, c.binary, args...); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}

	path := filepath.Join(dir, stem+".mp3")
	if _, err := os.Stat(path); err != nil {
		// Conversion can leave the original container behind.
		matches, _ := filepath.Glob(filepath.Join(dir, stem+".*"))
		if len(matches) == 0 {
			return "", fmt.Errorf("download audio: output file not found")
		}
		path = matches[0]
	}
	return path, nil
}

var languageCodes = map[string]string{
	"english":    "en",
	"vietnamese": "vi",
	"chinese":    "zh",
	"japanese":   "ja",
	"korean":     "ko",
	"french":     "fr",
	"german":     "de",
	"spanish":    "es",
}

// subLangs prefers the output language, then English.
func subLangs(language string) string {
	code, ok := languageCodes[strings.ToLower(strings.TrimSpace(language))]
	if !ok || code == "en" {
		return "en.*,en"
	}
	return code + ".*," + code + ",en.*,en"
}
