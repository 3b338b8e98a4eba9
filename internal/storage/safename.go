package storage

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxSafeTitleLen = 80

var (
	illegalChars   = regexp.MustCompile(`[<>:"/\\|?*]`)
	nonWordChars   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-.]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonStyleChars  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\-]+`)

	reservedNames = map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
		"COM6": true, "COM7": true, "COM8": true, "COM9": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
		"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
	}
)

// SafeTitle maps a display title to the filesystem-safe key used for every
// stored artifact. Distinct titles may collide; resume matching relies on the
// key alone.
func SafeTitle(title string) string {
	s := illegalChars.ReplaceAllString(title, "_")
	s = nonWordChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = strings.Trim(strings.TrimSpace(s), ". ")

	if s == "" {
		s = "unnamed"
	}
	if reservedNames[strings.ToUpper(s)] {
		s += "_file"
	}

	if utf8.RuneCountInString(s) > maxSafeTitleLen {
		s = strings.TrimRight(string([]rune(s)[:maxSafeTitleLen]), " ")
	}
	return s
}

// SafeStyleName keeps letters, digits, underscores and dashes.
func SafeStyleName(style string) string {
	return nonStyleChars.ReplaceAllString(style, "_")
}
