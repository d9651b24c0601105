package domain

import (
	"fmt"
	"path"
	"strings"
)

// TaggedImage is the read-only input of sorted-view planning: one
// image with its embedded tags already loaded.
type TaggedImage struct {
	CanonicalPath string
	RelativePath  string
	Tags          TagSet
}

// SortViewOptions controls sorted-view synthesis.
type SortViewOptions struct {
	// Tags restricts synthesis to this subset; empty means all tags.
	Tags TagSet
	// PreserveHierarchy nests each copy under its original relative
	// folder path inside the tag folder.
	PreserveHierarchy bool
}

// PlanSortedView stages one copy per (image, tag) pair. Destinations
// are relative to the sentinel directory: <tag>/<name> by default, or
// <tag>/<original relative path> with PreserveHierarchy. Hierarchical
// chain tags keep their slashes and become nested tag folders. When
// two images sharing a tag also share a basename, the later one gets
// a numeric suffix so both appear in the view. The plan is
// deterministic: images arrive in path order and tags are iterated
// sorted.
func PlanSortedView(images []TaggedImage, opts SortViewOptions) []CopyAction {
	var actions []CopyAction
	taken := make(map[string]bool)
	for _, img := range images {
		for _, tag := range img.Tags.Sorted() {
			if !opts.Tags.IsEmpty() && !opts.Tags.Has(tag) {
				continue
			}
			var dst string
			if opts.PreserveHierarchy {
				dst = path.Join(tag, img.RelativePath)
			} else {
				dst = path.Join(tag, path.Base(img.RelativePath))
			}
			ext := path.Ext(dst)
			base := strings.TrimSuffix(dst, ext)
			for n := 1; taken[dst]; n++ {
				dst = fmt.Sprintf("%s_%d%s", base, n, ext)
			}
			taken[dst] = true
			actions = append(actions, CopyAction{Src: img.CanonicalPath, Dst: dst})
		}
	}
	return actions
}
