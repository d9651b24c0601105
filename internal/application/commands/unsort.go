package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"imgtag/internal/application"
	"imgtag/internal/config"
	"imgtag/internal/ports"
)

// UnsortResult contains the result of tearing down the sorted view
type UnsortResult struct {
	Path       string
	BytesFreed int64
	Message    string
}

// UnsortCommand removes the derived sorted view. It only ever touches
// the sentinel subtree; originals outside it are never at risk.
type UnsortCommand struct {
	files   ports.FileOps
	confirm ports.Confirmer

	Root string
	// Tag optionally narrows the teardown to one tag folder inside
	// the view.
	Tag string
}

// NewUnsortCommand creates a new UnsortCommand
func NewUnsortCommand(files ports.FileOps, confirm ports.Confirmer, root string) *UnsortCommand {
	return &UnsortCommand{
		files:   files,
		confirm: confirm,
		Root:    root,
	}
}

// Validate checks the unsort parameters
func (c *UnsortCommand) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root directory is required",
		}
	}
	return nil
}

// Execute deletes <root>/_sorted after confirmation. An absent view
// is a no-op, not an error.
func (c *UnsortCommand) Execute(ctx context.Context) (*UnsortResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sentinel := filepath.Join(c.Root, config.SentinelDir)
	target := sentinel
	if c.Tag != "" {
		target = filepath.Join(sentinel, filepath.FromSlash(c.Tag))
		// A crafted tag like "../photos" must never escape the view.
		rel, err := filepath.Rel(sentinel, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, application.ErrOutsideSentinel
		}
	}

	result := &UnsortResult{Path: target}

	if !c.files.Exists(target) {
		result.Message = fmt.Sprintf("No sorted view at %s, nothing to do", target)
		return result, nil
	}

	ok, err := c.confirm.Confirm(fmt.Sprintf("Delete the sorted view at %s?", target))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, application.ErrNotConfirmed
	}

	freed, err := c.files.RemoveTree(target)
	if err != nil {
		return nil, &application.FilesystemError{Path: target, Op: "remove", Reason: err}
	}

	result.BytesFreed = freed
	result.Message = fmt.Sprintf("Removed sorted view at %s (%s freed)", target, formatBytes(freed))
	return result, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
