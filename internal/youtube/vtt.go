package youtube

import (
	"regexp"
	"strings"
)

var (
	vttTimestamp = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?\.\d{3}\s+-->`)
	vttTag       = regexp.MustCompile(`<[^>]*>`)
)

// CleanVTT turns a WebVTT document into plain text. Cue numbers, timings and
// inline tags are dropped; rolling auto-caption duplicates collapse into one line.
func CleanVTT(content string) string {
	var out []string
	prev := ""
	inNote := false

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			inNote = false
			continue
		}
		if inNote {
			continue
		}
		switch {
		case line == "WEBVTT", strings.HasPrefix(line, "WEBVTT "):
			continue
		case strings.HasPrefix(line, "NOTE"), line == "STYLE", line == "REGION":
			inNote = true
			continue
		case strings.HasPrefix(line, "Kind:"), strings.HasPrefix(line, "Language:"):
			continue
		case isCueNumber(line), vttTimestamp.MatchString(line):
			continue
		}

		line = strings.TrimSpace(vttTag.ReplaceAllString(line, ""))
		line = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&nbsp;", " ").Replace(line)
		if line == "" || line == prev {
			continue
		}
		out = append(out, line)
		prev = line
	}
	return strings.Join(out, "\n")
}

func isCueNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
