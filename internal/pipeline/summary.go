package pipeline

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
)

// Summary is the user-facing account of one run.
type Summary struct {
	RunID string

	Phase1Ran     bool
	Phase1Success int
	Phase1Total   int
	ResumeSkipped int

	Phase2Ran     bool
	Phase2Success int
	Phase2Skipped int
	Phase2Total   int

	Failures  []Failure
	Generated []GeneratedFile
	Cancelled bool
}

// Failure names a failed or cancelled job or task. Style is empty for acquisition.
type Failure struct {
	Phase  int
	Title  string
	Style  string
	Status domain.Status
	Error  string
}

type GeneratedFile struct {
	Input string
	Style string
	Path  string
}

// Failed reports whether any job or task did not succeed.
func (s Summary) Failed() bool {
	return len(s.Failures) > 0
}

func summarize(st *State) Summary {
	sum := Summary{
		Phase1Ran:     st.Phase1Ran,
		Phase2Ran:     st.Phase2Ran,
		ResumeSkipped: st.ResumeSkipped,
	}

	if st.Phase1Ran {
		sum.Phase1Total = len(st.Phase1.Results)
		sum.Phase1Success = st.Phase1.Count(domain.StatusSuccess)
		for _, r := range st.Phase1.Results {
			if r.Status == domain.StatusSuccess {
				continue
			}
			sum.Failures = append(sum.Failures, Failure{Phase: 1, Title: r.VideoTitle, Status: r.Status, Error: r.Error})
			if r.Status == domain.StatusCancelled {
				sum.Cancelled = true
			}
		}
	}

	if st.Phase2Ran {
		sum.Phase2Total = len(st.Phase2.Results)
		sum.Phase2Success = st.Phase2.Count(domain.StatusSuccess)
		sum.Phase2Skipped = st.Phase2.Count(domain.StatusSkipped)
		for _, r := range st.Phase2.Results {
			switch r.Status {
			case domain.StatusSuccess:
				sum.Generated = append(sum.Generated, GeneratedFile{Input: r.VideoTitle, Style: r.StyleName, Path: r.OutputFile})
			case domain.StatusSkipped:
			default:
				sum.Failures = append(sum.Failures, Failure{Phase: 2, Title: r.VideoTitle, Style: r.StyleName, Status: r.Status, Error: r.Error})
				if r.Status == domain.StatusCancelled {
					sum.Cancelled = true
				}
			}
		}
	}
	return sum
}

func (s Summary) String() string {
	var b strings.Builder
	if s.Cancelled {
		b.WriteString("Pipeline cancelled.\n")
	} else {
		b.WriteString("Pipeline complete.\n")
	}

	if s.Phase1Ran {
		fmt.Fprintf(&b, "Phase 1: %d/%d source(s) acquired", s.Phase1Success, s.Phase1Total)
		if s.ResumeSkipped > 0 {
			fmt.Fprintf(&b, ", %d skipped by resume", s.ResumeSkipped)
		}
		b.WriteString("\n")
	}
	if s.Phase2Ran {
		fmt.Fprintf(&b, "Phase 2: %d/%d document(s) refined", s.Phase2Success, s.Phase2Total)
		if s.Phase2Skipped > 0 {
			fmt.Fprintf(&b, ", %d skipped", s.Phase2Skipped)
		}
		b.WriteString("\n")
	}
	if !s.Phase1Ran && !s.Phase2Ran {
		b.WriteString("Nothing to process.\n")
	}

	if len(s.Generated) > 0 {
		b.WriteString("Generated files:\n")
		for _, g := range s.Generated {
			fmt.Fprintf(&b, "  - %s\n", g.Path)
		}
	}
	if len(s.Failures) > 0 {
		b.WriteString("Failures:\n")
		for _, f := range s.Failures {
			name := f.Title
			if f.Style != "" {
				name = fmt.Sprintf("%s [%s]", f.Title, f.Style)
			}
			fmt.Fprintf(&b, "  - phase %d %s (%s): %s\n", f.Phase, name, f.Status, f.Error)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
