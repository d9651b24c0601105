package ports

// FileOps is the copy/link primitive used by derived views and
// collections. Implementations create parent directories as needed and
// never remove or move a source file.
type FileOps interface {
	// Copy duplicates src at dst.
	Copy(src, dst string) error

	// Link creates a space-saving hard link of src at dst.
	Link(src, dst string) error

	// Exists reports whether dst already exists.
	Exists(dst string) bool

	// RemoveTree deletes the directory tree at path and returns the
	// total size in bytes of the regular files removed.
	RemoveTree(path string) (int64, error)
}
