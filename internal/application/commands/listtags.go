package commands

import (
	"context"
	"fmt"
	"sort"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// TagSort orders the list-tags output.
type TagSort int

const (
	// TagSortAlpha orders by tag name.
	TagSortAlpha TagSort = iota
	// TagSortCount orders by descending image count, ties by name.
	TagSortCount
)

// ParseTagSort converts a --sort flag value.
func ParseTagSort(s string) (TagSort, error) {
	switch s {
	case "", "alpha":
		return TagSortAlpha, nil
	case "count":
		return TagSortCount, nil
	default:
		return TagSortAlpha, &application.ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("unknown sort order: %q (expected alpha or count)", s),
		}
	}
}

// ListTagsResult contains the distinct tags of a collection
type ListTagsResult struct {
	Counts  []domain.TagCount
	Stats   *domain.SyncStats
	Total   int // distinct tags
	Scanned int // images scanned during sync
}

// ListTagsCommand lists every distinct tag under the root using the
// derived index, syncing it first so the cache reflects the embedded
// state.
type ListTagsCommand struct {
	index ports.TagIndex

	Root string
	Sort TagSort
}

// NewListTagsCommand creates a new ListTagsCommand
func NewListTagsCommand(index ports.TagIndex, root string) *ListTagsCommand {
	return &ListTagsCommand{index: index, Root: root}
}

// Execute syncs the index and returns the tag counts.
func (c *ListTagsCommand) Execute(ctx context.Context) (*ListTagsResult, error) {
	if c.Root == "" {
		return nil, &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}

	if err := c.index.Open(c.Root); err != nil {
		return nil, fmt.Errorf("failed to open tag index: %w", err)
	}
	defer c.index.Close()

	stats, err := syncIndex(c.index)
	if err != nil {
		return nil, err
	}

	counts, err := c.index.TagCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to query tag counts: %w", err)
	}

	if c.Sort == TagSortCount {
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].Count != counts[j].Count {
				return counts[i].Count > counts[j].Count
			}
			return counts[i].Tag < counts[j].Tag
		})
	}

	return &ListTagsResult{
		Counts:  counts,
		Stats:   stats,
		Total:   len(counts),
		Scanned: stats.FilesScanned,
	}, nil
}

// syncIndex refreshes a freshly opened index, rebuilding from scratch
// when the schema or root changed.
func syncIndex(index ports.TagIndex) (*domain.SyncStats, error) {
	var stats *domain.SyncStats
	var err error
	if index.NeedsFullRebuild() {
		stats, err = index.SyncFull()
	} else {
		stats, err = index.SyncIncremental()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sync tag index: %w", err)
	}
	return stats, nil
}
