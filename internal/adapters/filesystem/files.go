package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"imgtag/internal/application"
	"imgtag/internal/ports"
)

// FileOps implements the copy/link primitive. Sources are only ever
// opened for reading.
type FileOps struct{}

var _ ports.FileOps = FileOps{}

// Copy duplicates src at dst, creating parent directories. An existing
// dst is an error so derived views never silently clobber anything.
func (FileOps) Copy(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return &application.FilesystemError{Path: dst, Op: "copy", Reason: os.ErrExist}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &application.FilesystemError{Path: dst, Op: "copy", Reason: err}
	}

	in, err := os.Open(src)
	if err != nil {
		return &application.FilesystemError{Path: src, Op: "copy", Reason: err}
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return &application.FilesystemError{Path: dst, Op: "copy", Reason: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return &application.FilesystemError{Path: dst, Op: "copy", Reason: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return &application.FilesystemError{Path: dst, Op: "copy", Reason: err}
	}
	return nil
}

// Link creates a hard link of src at dst as a space-saving alternative
// to copying.
func (FileOps) Link(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return &application.FilesystemError{Path: dst, Op: "link", Reason: os.ErrExist}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &application.FilesystemError{Path: dst, Op: "link", Reason: err}
	}
	if err := os.Link(src, dst); err != nil {
		return &application.FilesystemError{Path: dst, Op: "link", Reason: err}
	}
	return nil
}

// Exists reports whether dst exists.
func (FileOps) Exists(dst string) bool {
	_, err := os.Stat(dst)
	return err == nil
}

// RemoveTree deletes path recursively and returns the bytes freed. A
// missing path is a no-op, not an error.
func (FileOps) RemoveTree(path string) (int64, error) {
	var freed int64
	filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err == nil && fi.Mode().IsRegular() {
			freed += fi.Size()
		}
		return nil
	})
	if err := os.RemoveAll(path); err != nil {
		return 0, &application.FilesystemError{Path: path, Op: "remove", Reason: err}
	}
	return freed, nil
}
