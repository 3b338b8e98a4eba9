package metadata

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// BuildFrontMatter renders r as a ---delimited YAML block. Empty fields are omitted.
func BuildFrontMatter(r Record) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	buf.WriteString(delimiter + "\n")
	return buf.String(), nil
}

// ParseFrontMatter splits a document into its front matter record and body.
func ParseFrontMatter(doc string) (Record, string, error) {
	if !strings.HasPrefix(doc, delimiter+"\n") {
		return Record{}, doc, fmt.Errorf("parse front matter: missing opening delimiter")
	}
	rest := doc[len(delimiter)+1:]

	end := strings.Index(rest, "\n"+delimiter+"\n")
	if end < 0 {
		return Record{}, doc, fmt.Errorf("parse front matter: missing closing delimiter")
	}

	var r Record
	if err := yaml.Unmarshal([]byte(rest[:end+1]), &r); err != nil {
		return Record{}, doc, fmt.Errorf("parse front matter: %w", err)
	}
	body := strings.TrimLeft(rest[end+len(delimiter)+2:], "\n")
	return r, body, nil
}
