package ports

import "imgtag/internal/domain"

// TagStore reads and writes the embedded tag set of a single image
// file. Implementations must never alter pixel data. Writes are
// all-or-nothing per file: either the full set lands or the file is
// untouched.
//
// The store gives no cross-process guarantees; concurrent external
// mutation of the same file during a run is the caller's problem.
type TagStore interface {
	// ReadTags returns the embedded tags of the file, or an empty set
	// when the file carries no tag metadata.
	ReadTags(path string) (domain.TagSet, error)

	// WriteTags replaces the embedded tag set of the file.
	WriteTags(path string, tags domain.TagSet) error

	// Close releases any resources held by the store.
	Close() error
}
