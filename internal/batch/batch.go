package batch

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrInvalidBatch marks a malformed batch file.
var ErrInvalidBatch = errors.New("invalid batch file")

// Row is one batch job. JobID is the 1-based data row number.
type Row struct {
	JobID        int
	Input        string
	Styles       []string
	Language     string
	OutputSubdir string
}

// Load reads and parses a batch CSV file.
func Load(path string, validStyles []string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return Parse(bytes.NewReader(data), validStyles)
}

// Parse reads UTF-8 CSV with a case-insensitive header. input is required;
// styles is a comma separated list that must match validStyles exactly.
func Parse(r io.Reader, validStyles []string) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: file is not UTF-8, save it as CSV UTF-8", ErrInvalidBatch)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["input"]; !ok {
		return nil, fmt.Errorf("%w: missing 'input' column", ErrInvalidBatch)
	}

	valid := make(map[string]bool, len(validStyles))
	for _, s := range validStyles {
		valid[s] = true
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := Row{
			JobID:        len(rows) + 1,
			Input:        get("input"),
			Language:     get("language"),
			OutputSubdir: get("output_subdir"),
		}
		if row.Input == "" {
			return nil, fmt.Errorf("%w: row %d: 'input' is required", ErrInvalidBatch, line)
		}

		for _, s := range strings.Split(get("styles"), ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			if !valid[s] {
				return nil, fmt.Errorf("%w: row %d: unknown style %q, valid: %s", ErrInvalidBatch, line, s, sortedKeys(valid))
			}
			row.Styles = append(row.Styles, s)
		}

		if row.OutputSubdir != "" {
			clean := filepath.Clean(row.OutputSubdir)
			if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
				return nil, fmt.Errorf("%w: row %d: output_subdir must stay inside the output directory", ErrInvalidBatch, line)
			}
			row.OutputSubdir = clean
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
