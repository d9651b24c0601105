// Package exiftool implements the tag store on top of an exiftool
// subprocess, keeping tags in the XMP dc:subject field of each image.
package exiftool

import (
	"errors"
	"fmt"

	exif "github.com/barasher/go-exiftool"

	"imgtag/internal/application"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// readKey is the flattened name exiftool reports for XMP dc:subject.
const readKey = "Subject"

// writeKey pins writes to the XMP dc group so we never touch IPTC
// keywords some files also carry.
const writeKey = "XMP-dc:Subject"

// Store reads and writes embedded tags through a long-lived exiftool
// subprocess. A Store is not safe for concurrent use; batch commands
// serialize access to it through a locking wrapper.
type Store struct {
	et *exif.Exiftool
}

var _ ports.TagStore = (*Store)(nil)

// NewStore starts an exiftool subprocess. binaryPath overrides the
// exiftool found on PATH when non-empty.
func NewStore(binaryPath string) (*Store, error) {
	var opts []func(*exif.Exiftool) error
	if binaryPath != "" {
		opts = append(opts, exif.SetExiftoolBinaryPath(binaryPath))
	}
	et, err := exif.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &Store{et: et}, nil
}

// ReadTags returns the embedded tag set of the file. A file without
// tag metadata yields an empty set, not an error.
func (s *Store) ReadTags(path string) (domain.TagSet, error) {
	metas := s.et.ExtractMetadata(path)
	if len(metas) != 1 {
		return domain.NewTagSet(), &application.MetadataError{
			Path: path, Op: "read",
			Reason: fmt.Errorf("exiftool returned %d results", len(metas)),
		}
	}
	meta := metas[0]
	if meta.Err != nil {
		return domain.NewTagSet(), &application.MetadataError{Path: path, Op: "read", Reason: meta.Err}
	}

	values, err := meta.GetStrings(readKey)
	if err != nil {
		if errors.Is(err, exif.ErrKeyNotFound) {
			return domain.NewTagSet(), nil
		}
		return domain.NewTagSet(), &application.MetadataError{Path: path, Op: "read", Reason: err}
	}
	return domain.NewTagSet(values...), nil
}

// WriteTags replaces the embedded tag set of the file. exiftool
// rewrites metadata atomically via a temp file, so a failed write
// leaves the original untouched.
func (s *Store) WriteTags(path string, tags domain.TagSet) error {
	meta := exif.EmptyFileMetadata()
	meta.File = path
	meta.SetStrings(writeKey, tags.Sorted())

	metas := []exif.FileMetadata{meta}
	s.et.WriteMetadata(metas)
	if metas[0].Err != nil {
		return &application.MetadataError{Path: path, Op: "write", Reason: metas[0].Err}
	}
	return nil
}

// Close stops the exiftool subprocess.
func (s *Store) Close() error {
	return s.et.Close()
}
