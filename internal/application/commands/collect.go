package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/interchange"
	"imgtag/internal/ports"
)

// CollectResult contains the result of assembling a collection
type CollectResult struct {
	Plan    *domain.CollectionPlan
	Summary *application.RunSummary
	Message string
}

// CollectCommand assembles the files named in a list into a
// destination directory, matching bare filenames against the scanned
// tree. Duplicate basenames are handled by the configured policy.
type CollectCommand struct {
	scanner ports.Scanner
	files   ports.FileOps

	Root       string
	Dest       string
	List       io.Reader
	Duplicates domain.DuplicatePolicy
	Link       bool
	DryRun     bool
}

// NewCollectCommand creates a new CollectCommand
func NewCollectCommand(scanner ports.Scanner, files ports.FileOps, root, dest string, list io.Reader) *CollectCommand {
	return &CollectCommand{
		scanner:    scanner,
		files:      files,
		Root:       root,
		Dest:       dest,
		List:       list,
		Duplicates: domain.DuplicateFirst,
	}
}

// Validate checks the collection parameters
func (c *CollectCommand) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	if strings.TrimSpace(c.Dest) == "" {
		return &application.ValidationError{
			Field:   "dest",
			Message: "destination directory is required",
		}
	}
	return nil
}

// Execute parses the name list, plans the collection and carries the
// plan out. Missing names are warnings; a failed copy never aborts
// the rest.
func (c *CollectCommand) Execute(ctx context.Context) (*CollectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	names, err := interchange.ReadNameList(c.List)
	if err != nil {
		return nil, fmt.Errorf("cannot read name list: %w", err)
	}

	assets, err := c.scanner.Scan(c.Root, true)
	if err != nil {
		return nil, err
	}

	index := domain.BuildNameIndex(assets)
	plan, err := domain.PlanCollection(index, names, c.Duplicates, c.Dest)
	if err != nil {
		return nil, err
	}

	result := &CollectResult{
		Plan:    plan,
		Summary: &application.RunSummary{},
	}

	for _, name := range plan.Missing {
		result.Summary.Record(application.ItemResult{
			Path: name, Outcome: application.OutcomeWarning,
			Detail: "no file with this name under the root",
		})
	}
	for _, group := range plan.Ambiguous {
		result.Summary.Record(application.ItemResult{
			Path: group.Name, Outcome: application.OutcomeSkipped,
			Detail: fmt.Sprintf("%d matches, skipped by duplicate policy", len(group.Matches)),
		})
	}

	transfer := c.files.Copy
	verb := "copy"
	if c.Link {
		transfer = c.files.Link
		verb = "link"
	}

	done := 0
	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if c.DryRun {
			result.Summary.Record(application.ItemResult{
				Path: action.Src, Outcome: application.OutcomeOK,
				Detail: fmt.Sprintf("would %s to %s", verb, action.Dst),
			})
			done++
			continue
		}
		if err := transfer(action.Src, action.Dst); err != nil {
			result.Summary.Record(application.ItemResult{
				Path: action.Src, Outcome: application.OutcomeError,
				Err: &application.FilesystemError{Path: action.Dst, Op: verb, Reason: err},
			})
			continue
		}
		result.Summary.Record(application.ItemResult{
			Path: action.Src, Outcome: application.OutcomeOK,
			Detail: fmt.Sprintf("%s -> %s", verb, filepath.Base(action.Dst)),
		})
		done++
	}

	verb2 := "Collected"
	if c.DryRun {
		verb2 = "Would collect"
	}
	result.Message = fmt.Sprintf("%s %d/%d files into %s (%d missing)",
		verb2, done, len(names), c.Dest, len(plan.Missing))
	return result, nil
}
