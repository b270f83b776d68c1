// Package report summarizes check results and keeps their
// history.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"digital.vasic.expect/pkg/runner"
)

// Summary aggregates the results of one suite run.
type Summary struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	Checks        []CheckSummary `json:"checks"`
	Total         int            `json:"total"`
	Passed        int            `json:"passed"`
	Failed        int            `json:"failed"`
	TotalAttempts int            `json:"total_attempts"`
	LongestCheck  time.Duration  `json:"longest_check"`
	PassRate      float64        `json:"pass_rate"`
}

// CheckSummary represents a summary of a single check.
type CheckSummary struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Attempts int           `json:"attempts"`
	Elapsed  time.Duration `json:"elapsed"`
	Error    string        `json:"error,omitempty"`
}

// BuildSummary creates a summary from runner results.
func BuildSummary(results []runner.Result) *Summary {
	s := &Summary{
		GeneratedAt: time.Now(),
		Checks:      make([]CheckSummary, 0, len(results)),
	}

	for _, r := range results {
		cs := CheckSummary{
			Name:     r.Check,
			Passed:   r.Passed(),
			Attempts: r.Outcome.Attempts,
			Elapsed:  r.Outcome.Elapsed,
		}
		if r.Err != nil {
			cs.Error = r.Err.Error()
		}

		s.Checks = append(s.Checks, cs)
		s.Total++
		s.TotalAttempts += cs.Attempts
		if cs.Elapsed > s.LongestCheck {
			s.LongestCheck = cs.Elapsed
		}
		if cs.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}

	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}

// WriteText renders the summary for a terminal. Colors follow
// color.NoColor.
func WriteText(w io.Writer, s *Summary) error {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	for _, c := range s.Checks {
		status := pass("PASS")
		if !c.Passed {
			status = fail("FAIL")
		}
		fmt.Fprintf(&b, "%s %s %s\n", status, c.Name,
			dim(fmt.Sprintf("(%d attempts, %s)", c.Attempts, c.Elapsed)))
		if c.Error != "" {
			for _, line := range strings.Split(c.Error, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	fmt.Fprintf(&b, "\n%d checks, %d passed, %d failed (%.1f%%)\n",
		s.Total, s.Passed, s.Failed, s.PassRate)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
