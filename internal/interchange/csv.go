// Package interchange implements the CSV formats imgtag shares with
// the outside world: the filepath,tags backup format, the validation
// report, and the collection name-list input.
package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"imgtag/internal/domain"
)

// Header is the schema of the tag backup format.
var Header = []string{"filepath", "tags"}

// Record is one (path, tag-set) pair of the interchange format.
type Record struct {
	Path string
	Tags domain.TagSet
	Line int // source line, 1-based, for reporting
}

// Encode writes records in the backup format. Tag lists are sorted by
// TagSet, so encoding unchanged state twice is byte-identical.
func Encode(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write([]string{rec.Path, rec.Tags.Joined()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Status classifies a whole file after validation.
type Status int

const (
	StatusValid Status = iota
	StatusValidWithWarnings
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "VALID"
	case StatusValidWithWarnings:
		return "VALID_WITH_WARNINGS"
	case StatusInvalid:
		return "INVALID"
	default:
		return "unknown"
	}
}

// Issue is one finding of the validation pass, reportable as a
// filepath,status,issue row.
type Issue struct {
	Path    string
	Level   string // "warning" or "error"
	Message string
	Line    int
}

// Report is the structured outcome of decoding and validating one
// interchange file. Records holds only the rows that survived
// structural checks; unresolved paths stay in Records but are flagged
// as warnings so import can skip them row by row.
type Report struct {
	Records   []Record
	Issues    []Issue
	RowsTotal int
}

// Status derives the overall classification. Any error-level issue
// makes the file INVALID; warnings alone downgrade to
// VALID_WITH_WARNINGS.
func (r *Report) Status() Status {
	status := StatusValid
	for _, is := range r.Issues {
		switch is.Level {
		case "error":
			return StatusInvalid
		case "warning":
			status = StatusValidWithWarnings
		}
	}
	return status
}

// Counts returns the number of warnings and errors found.
func (r *Report) Counts() (warnings, errs int) {
	for _, is := range r.Issues {
		switch is.Level {
		case "warning":
			warnings++
		case "error":
			errs++
		}
	}
	return
}

func (r *Report) warn(path, msg string, line int) {
	r.Issues = append(r.Issues, Issue{Path: path, Level: "warning", Message: msg, Line: line})
}

func (r *Report) fail(path, msg string, line int) {
	r.Issues = append(r.Issues, Issue{Path: path, Level: "error", Message: msg, Line: line})
}

// Decode parses an interchange file and performs the structural
// checks: header row matches the schema, every row has the right
// shape, and all text is valid UTF-8. Malformed rows become
// error-level issues; decoding always continues to the end so the
// report covers the whole file.
func Decode(r io.Reader) (*Report, error) {
	report := &Report{}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row-shape errors are ours to report

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, fmt.Errorf("header %v does not match expected schema %v", header, Header)
	}

	line := 1
	for {
		line++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.fail("", fmt.Sprintf("malformed row: %v", err), line)
			continue
		}
		report.RowsTotal++

		if len(row) != len(Header) {
			report.fail("", fmt.Sprintf("expected %d fields, got %d", len(Header), len(row)), line)
			continue
		}

		path := strings.TrimSpace(row[0])
		if path == "" {
			report.fail("", "empty filepath field", line)
			continue
		}
		if !utf8.ValidString(path) || !utf8.ValidString(row[1]) {
			report.fail(path, "field is not valid UTF-8", line)
			continue
		}

		report.Records = append(report.Records, Record{
			Path: path,
			Tags: domain.SplitTagField(row[1]),
			Line: line,
		})
	}

	return report, nil
}

// ResolvePaths checks every record against the operative root. Paths
// that do not resolve are reported as warnings, never as fatal: the
// backup may simply be older than the tree.
func (r *Report) ResolvePaths(resolve func(path string) (string, bool)) map[int]string {
	resolved := make(map[int]string, len(r.Records))
	for i, rec := range r.Records {
		abs, ok := resolve(rec.Path)
		if !ok {
			r.warn(rec.Path, "path does not resolve to an existing file under the root", rec.Line)
			continue
		}
		resolved[i] = abs
	}
	return resolved
}

// EncodeIssues writes the validation report format:
// filepath,status,issue.
func EncodeIssues(w io.Writer, issues []Issue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"filepath", "status", "issue"}); err != nil {
		return err
	}
	for _, is := range issues {
		if err := cw.Write([]string{is.Path, is.Level, is.Message}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func headerMatches(got []string) bool {
	if len(got) != len(Header) {
		return false
	}
	for i, h := range got {
		if strings.ToLower(strings.TrimSpace(h)) != Header[i] {
			return false
		}
	}
	return true
}

// ReadNameList parses a collection input list: either one bare
// filename per line, or a CSV whose header declares a filename column.
// The format is sniffed from the first line, the way the original pool
// definitions were.
func ReadNameList(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return nil, errors.New("name list is empty")
	}

	first := strings.ToLower(strings.TrimSpace(lines[0]))
	if strings.Contains(first, ",") || first == "filename" {
		return readNameCSV(strings.NewReader(string(data)))
	}

	var names []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if len(names) == 0 {
		return nil, errors.New("name list contains no filenames")
	}
	return names, nil
}

func readNameCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == "filename" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.New("CSV name list must have a 'filename' column")
	}

	var names []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if col < len(row) {
			if name := strings.TrimSpace(row[col]); name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, errors.New("name list contains no filenames")
	}
	return names, nil
}
