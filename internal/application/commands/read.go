package commands

import (
	"context"
	"fmt"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// FileTags pairs one image with its embedded tags for display.
type FileTags struct {
	RelativePath string
	Tags         domain.TagSet
	Err          error
}

// ReadTagsCommand reads and returns the tags of the images under a
// path.
type ReadTagsCommand struct {
	scanner ports.Scanner
	store   ports.TagStore

	Path      string
	Recursive bool
}

// NewReadTagsCommand creates a new ReadTagsCommand
func NewReadTagsCommand(scanner ports.Scanner, store ports.TagStore, path string) *ReadTagsCommand {
	return &ReadTagsCommand{scanner: scanner, store: store, Path: path}
}

// Validate checks the read operation
func (c *ReadTagsCommand) Validate() error {
	if c.Path == "" {
		return &application.ValidationError{
			Field:   "path",
			Message: "path is required",
		}
	}
	return nil
}

// Execute reads tags file by file; unreadable metadata is recorded on
// the entry, not fatal.
func (c *ReadTagsCommand) Execute(ctx context.Context) ([]FileTags, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	assets, err := c.scanner.Scan(c.Path, c.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", c.Path, err)
	}

	out := make([]FileTags, 0, len(assets))
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		tags, rerr := c.store.ReadTags(asset.CanonicalPath)
		out = append(out, FileTags{RelativePath: asset.RelativePath, Tags: tags, Err: rerr})
	}
	return out, nil
}
