package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// AutoTagResult contains the result of an auto-tag run
type AutoTagResult struct {
	Summary     *application.RunSummary
	ImagesFound int
	TagsAdded   int
	UniqueSets  int // distinct generated tag sequences seen
	Message     string
}

// AutoTagCommand generates tags from each file's location under the
// root and reconciles them onto the file.
type AutoTagCommand struct {
	scanner ports.Scanner
	store   ports.TagStore

	Root         string
	Policy       domain.Policy
	MaxDepth     int
	FromFilename bool
	DryRun       bool
	Workers      int
}

// NewAutoTagCommand creates a new AutoTagCommand
func NewAutoTagCommand(scanner ports.Scanner, store ports.TagStore, root string) *AutoTagCommand {
	return &AutoTagCommand{
		scanner: scanner,
		store:   store,
		Root:    root,
		Policy:  domain.PolicyMerge,
	}
}

// Validate checks if the auto-tag run can proceed
func (c *AutoTagCommand) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	if c.MaxDepth < 0 {
		return &application.ValidationError{
			Field:   "maxDepth",
			Message: "max depth cannot be negative",
		}
	}
	switch c.Policy {
	case domain.PolicyMerge, domain.PolicyOverwrite, domain.PolicyAddOnly:
		return nil
	default:
		return fmt.Errorf("%w: %d", domain.ErrInvalidPolicy, c.Policy)
	}
}

// Execute runs the auto-tag command. Each file is processed
// independently: a metadata failure is recorded in the summary and
// never aborts the batch.
func (c *AutoTagCommand) Execute(ctx context.Context) (*AutoTagResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	assets, err := c.scanner.Scan(c.Root, true)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", c.Root, err)
	}

	result := &AutoTagResult{
		Summary:     &application.RunSummary{},
		ImagesFound: len(assets),
	}

	store := LockStore(c.store)
	opts := domain.TokenizeOptions{FromFilename: c.FromFilename, MaxDepth: c.MaxDepth}

	var counters struct {
		mu    sync.Mutex
		added int
		seqs  map[string]struct{}
	}
	counters.seqs = make(map[string]struct{})

	err = runBatch(ctx, assets, c.Workers, func(asset *domain.ImageAsset) {
		tokens := domain.TokenizePath(asset.RelativePath, opts)
		if len(tokens) == 0 {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeSkipped,
				Detail: "no tags derivable",
			})
			return
		}

		current, rerr := store.ReadTags(asset.CanonicalPath)
		if rerr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: rerr,
			})
			return
		}

		plan, perr := domain.Reconcile(current, domain.NewTagSet(tokens...), c.Policy)
		if perr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: perr,
			})
			return
		}

		counters.mu.Lock()
		counters.seqs[strings.Join(tokens, "\x00")] = struct{}{}
		counters.added += len(plan.Added)
		counters.mu.Unlock()

		if !plan.Changed() {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeSkipped,
				Detail: "already tagged",
			})
			return
		}

		if c.DryRun {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeOK,
				Detail: fmt.Sprintf("would add: %s", strings.Join(plan.Added, ",")),
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

	result.TagsAdded = counters.added
	result.UniqueSets = len(counters.seqs)
	verb := "Tagged"
	if c.DryRun {
		verb = "Would tag"
	}
	ok, _, _, _ := result.Summary.Counts()
	result.Message = fmt.Sprintf("%s %d/%d images (%d tags added)", verb, ok, len(assets), counters.added)
	return result, nil
}
