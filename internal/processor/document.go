package processor

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
)

const maxPageBytes = 10 << 20

var (
	plainTextExtensions = map[string]bool{
		".txt": true, ".md": true, ".markdown": true, ".csv": true, ".json": true,
		".xml": true, ".srt": true, ".vtt": true,
	}
	htmlExtensions = map[string]bool{".html": true, ".htm": true}

	scriptBlocks = regexp.MustCompile(`(?is)<(script|style|noscript|head)\b[^>]*>.*?</(script|style|noscript|head)>`)
	blockTags    = regexp.MustCompile(`(?i)<(br|/p|/div|/h[1-6]|/li|/tr|/section|/article)[^>]*>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
	blankLines   = regexp.MustCompile(`\n\s*\n+`)
	spaceRuns    = regexp.MustCompile(`[ \t\f\r]+`)
)

func (p *implProcessor) acquireDocument(ctx context.Context, job domain.Job) (string, error) {
	if strings.HasPrefix(job.SourcePath, "http://") || strings.HasPrefix(job.SourcePath, "https://") {
		return fetchWebpage(ctx, job.SourcePath)
	}
	return readDocument(job.SourcePath)
}

func readDocument(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !plainTextExtensions[ext] && !htmlExtensions[ext] {
		return "", fmt.Errorf("unsupported document type %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	if htmlExtensions[ext] {
		text = HTMLToText(text)
	}
	return strings.TrimSpace(text), nil
}

func fetchWebpage(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; bodhiflow/0.2)")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch webpage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch webpage: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read webpage: %w", err)
	}

	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "html") {
		return HTMLToText(string(body)), nil
	}
	return strings.TrimSpace(string(body)), nil
}

// HTMLToText strips markup and keeps paragraph breaks.
func HTMLToText(doc string) string {
	s := scriptBlocks.ReplaceAllString(doc, "")
	s = blockTags.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = spaceRuns.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
