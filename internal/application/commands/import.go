package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/interchange"
	"imgtag/internal/ports"
)

// ValidateCSVCommand runs the structural and path checks of the
// interchange format without touching any file.
type ValidateCSVCommand struct {
	Root string
	In   io.Reader

	// Exists is injectable for tests; defaults to an os.Stat check.
	Exists func(path string) bool
}

// NewValidateCSVCommand creates a new ValidateCSVCommand
func NewValidateCSVCommand(root string, in io.Reader) *ValidateCSVCommand {
	return &ValidateCSVCommand{Root: root, In: in}
}

// Execute decodes and validates, returning the structured report plus
// the resolved canonical path per surviving record index.
func (c *ValidateCSVCommand) Execute(ctx context.Context) (*interchange.Report, map[int]string, error) {
	report, err := interchange.Decode(c.In)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse CSV: %w", err)
	}

	exists := c.Exists
	if exists == nil {
		exists = func(path string) bool {
			fi, err := os.Stat(path)
			return err == nil && !fi.IsDir()
		}
	}

	resolved := report.ResolvePaths(func(p string) (string, bool) {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(c.Root, filepath.FromSlash(p))
		}
		if !exists(abs) {
			return "", false
		}
		return abs, true
	})
	return report, resolved, nil
}

// ImportResult contains the result of a CSV import
type ImportResult struct {
	Report  *interchange.Report
	Summary *application.RunSummary
	Message string
}

// ImportCommand reconciles the tag sets of a CSV backup onto the
// files under the root. An INVALID file blocks the import unless
// Force is set; unresolved paths are skipped row by row.
type ImportCommand struct {
	store ports.TagStore

	Root    string
	In      io.Reader
	Policy  domain.Policy
	DryRun  bool
	Force   bool
	Workers int

	// Exists is injectable for tests; see ValidateCSVCommand.
	Exists func(path string) bool
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.TagStore, root string, in io.Reader) *ImportCommand {
	return &ImportCommand{
		store:  store,
		Root:   root,
		In:     in,
		Policy: domain.PolicyMerge,
	}
}

// Validate checks the import parameters
func (c *ImportCommand) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	switch c.Policy {
	case domain.PolicyMerge, domain.PolicyOverwrite, domain.PolicyAddOnly:
		return nil
	default:
		return fmt.Errorf("%w: %d", domain.ErrInvalidPolicy, c.Policy)
	}
}

// Execute validates, then reconciles record by record. A failing row
// never aborts the rest of the batch.
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	validate := &ValidateCSVCommand{Root: c.Root, In: c.In, Exists: c.Exists}
	report, resolved, err := validate.Execute(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Report:  report,
		Summary: &application.RunSummary{},
	}

	if report.Status() == interchange.StatusInvalid && !c.Force {
		_, errs := report.Counts()
		return result, &application.ValidationFailure{File: "import CSV", Errors: errs}
	}

	store := LockStore(c.store)

	// Rebuild the record list as pseudo-assets so the shared batch
	// runner handles pooling and cancellation.
	assets := make([]*domain.ImageAsset, 0, len(report.Records))
	proposals := make(map[string]domain.TagSet, len(report.Records))
	for i, rec := range report.Records {
		abs, ok := resolved[i]
		if !ok {
			result.Summary.Record(application.ItemResult{
				Path: rec.Path, Outcome: application.OutcomeWarning,
				Detail: "path does not resolve under root",
			})
			continue
		}
		assets = append(assets, &domain.ImageAsset{CanonicalPath: abs, RelativePath: rec.Path})
		proposals[abs] = rec.Tags
	}

	err = runBatch(ctx, assets, c.Workers, func(asset *domain.ImageAsset) {
		current, rerr := store.ReadTags(asset.CanonicalPath)
		if rerr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: rerr,
			})
			return
		}

		plan, perr := domain.Reconcile(current, proposals[asset.CanonicalPath], c.Policy)
		if perr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: perr,
			})
			return
		}

		if !plan.Changed() {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeSkipped,
				Detail: "no change",
			})
			return
		}
		if c.DryRun {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeOK,
				Detail: fmt.Sprintf("would set: %s", plan.Result.Joined()),
			})
			return
		}
		if werr := store.WriteTags(asset.CanonicalPath, plan.Result); werr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: werr,
			})
			return
		}
		result.Summary.Record(application.ItemResult{
			Path: asset.RelativePath, Outcome: application.OutcomeOK,
			Detail: fmt.Sprintf("tags: %s", plan.Result.Joined()),
		})
	})
	if err != nil {
		return result, err
	}

	ok, _, warnings, errs := result.Summary.Counts()
	verb := "Imported"
	if c.DryRun {
		verb = "Would import"
	}
	result.Message = fmt.Sprintf("%s %d rows (%d warnings, %d errors)", verb, ok, warnings, errs)
	return result, nil
}
