package commands

import (
	"context"
	"fmt"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// SearchResult contains the images carrying one tag
type SearchResult struct {
	Tag   string
	Paths []string // relative paths, sorted
}

// SearchCommand finds every image carrying a single tag via the
// derived index.
type SearchCommand struct {
	index ports.TagIndex

	Root string
	Tag  string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(index ports.TagIndex, root, tag string) *SearchCommand {
	return &SearchCommand{index: index, Root: root, Tag: tag}
}

// Validate checks the search query
func (c *SearchCommand) Validate() error {
	if domain.NormalizeTag(c.Tag) == "" {
		return &application.ValidationError{
			Field:   "tag",
			Message: "a tag to search for is required",
		}
	}
	return nil
}

// Execute syncs the index and returns the matching paths.
func (c *SearchCommand) Execute(ctx context.Context) (*SearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.index.Open(c.Root); err != nil {
		return nil, fmt.Errorf("failed to open tag index: %w", err)
	}
	defer c.index.Close()

	if _, err := syncIndex(c.index); err != nil {
		return nil, err
	}

	tag := domain.NormalizeTag(c.Tag)
	paths, err := c.index.FindByTag(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	return &SearchResult{Tag: tag, Paths: paths}, nil
}
