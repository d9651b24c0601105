package commands

import (
	"context"
	"fmt"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// TagMode selects what ApplyTagsCommand does with the given tags.
type TagMode int

const (
	// TagModeAdd merges the tags into each file.
	TagModeAdd TagMode = iota
	// TagModeRemove deletes the listed tags from each file.
	TagModeRemove
	// TagModeClear removes every tag from each file.
	TagModeClear
)

// ApplyTagsResult contains the result of a tag add/remove run
type ApplyTagsResult struct {
	Summary     *application.RunSummary
	ImagesFound int
	Message     string
}

// ApplyTagsCommand adds or removes explicit tags on the images under a
// path.
type ApplyTagsCommand struct {
	scanner ports.Scanner
	store   ports.TagStore

	Path      string
	Tags      []string
	Mode      TagMode
	Recursive bool
	Workers   int
}

// NewApplyTagsCommand creates a new ApplyTagsCommand
func NewApplyTagsCommand(scanner ports.Scanner, store ports.TagStore, path string, tags []string, mode TagMode) *ApplyTagsCommand {
	return &ApplyTagsCommand{
		scanner: scanner,
		store:   store,
		Path:    path,
		Tags:    tags,
		Mode:    mode,
	}
}

// Validate checks the tag operation
func (c *ApplyTagsCommand) Validate() error {
	if c.Path == "" {
		return &application.ValidationError{
			Field:   "path",
			Message: "path is required",
		}
	}
	if c.Mode != TagModeClear && domain.NewTagSet(c.Tags...).IsEmpty() {
		return &application.ValidationError{
			Field:   "tags",
			Message: "at least one tag is required",
		}
	}
	return nil
}

// Execute runs the tag operation over every matched image.
func (c *ApplyTagsCommand) Execute(ctx context.Context) (*ApplyTagsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	assets, err := c.scanner.Scan(c.Path, c.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", c.Path, err)
	}

	result := &ApplyTagsResult{
		Summary:     &application.RunSummary{},
		ImagesFound: len(assets),
	}

	store := LockStore(c.store)
	given := domain.NewTagSet(c.Tags...)

	err = runBatch(ctx, assets, c.Workers, func(asset *domain.ImageAsset) {
		current, rerr := store.ReadTags(asset.CanonicalPath)
		if rerr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: rerr,
			})
			return
		}

		var next domain.TagSet
		switch c.Mode {
		case TagModeAdd:
			plan, perr := domain.Reconcile(current, given, domain.PolicyMerge)
			if perr != nil {
				result.Summary.Record(application.ItemResult{
					Path: asset.RelativePath, Outcome: application.OutcomeError, Err: perr,
				})
				return
			}
			next = plan.Result
		case TagModeRemove:
			next = current.Difference(given)
		case TagModeClear:
			next = domain.NewTagSet()
		}

		if next.Equal(current) {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeSkipped,
				Detail: "no change",
			})
			return
		}
		if werr := store.WriteTags(asset.CanonicalPath, next); werr != nil {
			result.Summary.Record(application.ItemResult{
				Path: asset.RelativePath, Outcome: application.OutcomeError, Err: werr,
			})
			return
		}
		result.Summary.Record(application.ItemResult{
			Path: asset.RelativePath, Outcome: application.OutcomeOK,
			Detail: fmt.Sprintf("tags: %s", next.Joined()),
		})
	})
	if err != nil {
		return result, err
	}

	ok, _, _, _ := result.Summary.Counts()
	result.Message = fmt.Sprintf("Modified %d/%d images", ok, len(assets))
	return result, nil
}
