package application

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Outcome classifies the result of processing one item in a batch.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeSkipped
	OutcomeWarning
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeWarning:
		return "warning"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// ItemResult is the recorded outcome of one file in a batch run.
type ItemResult struct {
	Path    string
	Outcome Outcome
	Detail  string
	Err     error
}

// RunSummary collects per-item outcomes of a batch operation. It is
// safe for concurrent recording from worker goroutines; rendering
// sorts items by path so output never depends on completion order.
type RunSummary struct {
	mu    sync.Mutex
	items []ItemResult
}

// Record appends one item outcome.
func (s *RunSummary) Record(r ItemResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
}

// Items returns the recorded outcomes sorted by path.
func (s *RunSummary) Items() []ItemResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ItemResult, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Counts returns the number of successes, skips, warnings and errors.
func (s *RunSummary) Counts() (ok, skipped, warnings, errors int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		switch r.Outcome {
		case OutcomeOK:
			ok++
		case OutcomeSkipped:
			skipped++
		case OutcomeWarning:
			warnings++
		case OutcomeError:
			errors++
		}
	}
	return
}

// HasErrors reports whether any item failed.
func (s *RunSummary) HasErrors() bool {
	_, _, _, errs := s.Counts()
	return errs > 0
}

// Footer renders the closing summary line shared by all commands.
func (s *RunSummary) Footer() string {
	ok, skipped, warnings, errs := s.Counts()
	parts := []string{fmt.Sprintf("%d ok", ok)}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", warnings))
	}
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", errs))
	}
	return "Summary: " + strings.Join(parts, ", ")
}

// OutputFormat selects how report-style commands render their output.
// The set is closed; the selected variant is picked once at the CLI
// boundary and both variants share the same report data.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatCSV
)

// ParseOutputFormat converts a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatText, &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown output format: %q (expected text or csv)", s),
		}
	}
}
