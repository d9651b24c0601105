package commands

import (
	"context"
	"fmt"
	"io"

	"imgtag/internal/application"
	"imgtag/internal/interchange"
	"imgtag/internal/ports"
)

// ExportResult contains the result of a CSV export
type ExportResult struct {
	ImagesExported int
	Summary        application.RunSummary
	Message        string
}

// ExportCommand serializes every image's path and tag set to the CSV
// interchange format. Tag lists are sorted, so exporting an unchanged
// tree twice produces byte-identical output.
type ExportCommand struct {
	scanner ports.Scanner
	store   ports.TagStore

	Root      string
	Relative  bool // write root-relative instead of canonical paths
	Recursive bool
	Out       io.Writer
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(scanner ports.Scanner, store ports.TagStore, root string, out io.Writer) *ExportCommand {
	return &ExportCommand{
		scanner:   scanner,
		store:     store,
		Root:      root,
		Recursive: true,
		Out:       out,
	}
}

// Validate checks the export parameters
func (c *ExportCommand) Validate() error {
	if c.Root == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	if c.Out == nil {
		return &application.ValidationError{
			Field:   "output",
			Message: "an output destination is required",
		}
	}
	return nil
}

// Execute scans, reads tags and writes records in scan order. Rows
// written before a cancellation remain valid CSV.
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	assets, err := c.scanner.Scan(c.Root, c.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", c.Root, err)
	}

	result := &ExportResult{}
	records := make([]interchange.Record, 0, len(assets))
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			break
		}
		tags, rerr := c.store.ReadTags(asset.CanonicalPath)
		if rerr != nil {
			// unreadable files are missing from the backup, so they
			// must show up in the summary
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError,
				Err: &application.MetadataError{Path: asset.RelativePath, Op: "read", Reason: rerr},
			})
			continue
		}
		path := asset.CanonicalPath
		if c.Relative {
			path = asset.RelativePath
		}
		records = append(records, interchange.Record{Path: path, Tags: tags})
		result.Summary.Record(application.ItemResult{
			Path: asset.RelativePath, Outcome: application.OutcomeOK,
		})
	}

	if err := interchange.Encode(c.Out, records); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	result.ImagesExported = len(records)
	_, _, _, errs := result.Summary.Counts()
	if errs > 0 {
		result.Message = fmt.Sprintf("Exported %d images (%d unreadable)", len(records), errs)
	} else {
		result.Message = fmt.Sprintf("Exported %d images", len(records))
	}
	return result, nil
}
