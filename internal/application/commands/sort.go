package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"imgtag/internal/application"
	"imgtag/internal/config"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// SortResult contains the result of synthesizing the sorted view
type SortResult struct {
	Actions []domain.CopyAction
	Summary *application.RunSummary
	Message string
}

// SortCommand materializes the by-tag sorted view under the sentinel
// directory. The view is derived state: sources are never moved, and
// the whole subtree can be torn down and rebuilt at any time.
type SortCommand struct {
	scanner ports.Scanner
	store   ports.TagStore
	files   ports.FileOps

	Root    string
	Opts    domain.SortViewOptions
	Link    bool
	Clear   bool
	DryRun  bool
	Workers int
}

// NewSortCommand creates a new SortCommand
func NewSortCommand(scanner ports.Scanner, store ports.TagStore, files ports.FileOps, root string) *SortCommand {
	return &SortCommand{
		scanner: scanner,
		store:   store,
		files:   files,
		Root:    root,
	}
}

// Validate checks the sort parameters
func (c *SortCommand) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	return nil
}

// Execute scans the tree, reads embedded tags, and stages one copy
// per (image, tag) pair under <root>/_sorted. Existing destinations
// are left alone so repeated runs converge instead of duplicating
// work; --clear rebuilds from scratch.
func (c *SortCommand) Execute(ctx context.Context) (*SortResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sentinel := filepath.Join(c.Root, config.SentinelDir)

	if c.Clear && !c.DryRun {
		if _, err := c.files.RemoveTree(sentinel); err != nil {
			return nil, &application.FilesystemError{Path: sentinel, Op: "clear", Reason: err}
		}
	}

	assets, err := c.scanner.Scan(c.Root, true)
	if err != nil {
		return nil, err
	}

	result := &SortResult{Summary: &application.RunSummary{}}

	store := LockStore(c.store)
	var mu sync.Mutex
	images := make([]domain.TaggedImage, 0, len(assets))

	err = runBatch(ctx, assets, c.Workers, func(asset *domain.ImageAsset) {
		tags, rerr := store.ReadTags(asset.CanonicalPath)
		if rerr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError,
				Err: &application.MetadataError{Path: asset.RelativePath, Op: "read", Reason: rerr},
			})
			return
		}
		if tags.IsEmpty() {
			return
		}
		mu.Lock()
		images = append(images, domain.TaggedImage{
			CanonicalPath: asset.CanonicalPath,
			RelativePath:  asset.RelativePath,
			Tags:          tags,
		})
		mu.Unlock()
	})
	if err != nil {
		return result, err
	}

	// Planning iterates scan order; re-sort after the parallel reads.
	sortTaggedImages(images)
	result.Actions = domain.PlanSortedView(images, c.Opts)

	transfer := c.files.Copy
	verb := "copy"
	if c.Link {
		transfer = c.files.Link
		verb = "link"
	}

	done := 0
	for _, action := range result.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		dst := filepath.Join(sentinel, filepath.FromSlash(action.Dst))
		if c.files.Exists(dst) {
			result.Summary.Record(application.ItemResult{
				Path: action.Dst, Outcome: application.OutcomeSkipped,
				Detail: "destination already exists",
			})
			continue
		}
		if c.DryRun {
			result.Summary.Record(application.ItemResult{
				Path: action.Dst, Outcome: application.OutcomeOK,
				Detail: fmt.Sprintf("would %s from %s", verb, action.Src),
			})
			done++
			continue
		}
		if err := transfer(action.Src, dst); err != nil {
			result.Summary.Record(application.ItemResult{
				Path: action.Dst, Outcome: application.OutcomeError,
				Err: &application.FilesystemError{Path: dst, Op: verb, Reason: err},
			})
			continue
		}
		result.Summary.Record(application.ItemResult{
			Path: action.Dst, Outcome: application.OutcomeOK,
		})
		done++
	}

	verb2 := "Sorted"
	if c.DryRun {
		verb2 = "Would sort"
	}
	result.Message = fmt.Sprintf("%s %d copies from %d tagged images into %s",
		verb2, done, len(images), config.SentinelDir)
	return result, nil
}

func sortTaggedImages(images []domain.TaggedImage) {
	sort.Slice(images, func(i, j int) bool {
		return images[i].CanonicalPath < images[j].CanonicalPath
	})
}
