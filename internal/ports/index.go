package ports

import "imgtag/internal/domain"

// TagIndex provides cached access to the tag state of a collection so
// list-tags and search do not re-read metadata of unchanged files. The
// index is derived state only: the embedded tags on the originals stay
// the single source of truth, and the cache is fully rebuildable from
// them at any time.
type TagIndex interface {
	// Lifecycle
	Open(rootPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental() (*domain.SyncStats, error)
	SyncFull() (*domain.SyncStats, error)

	// Queries
	TagCounts() ([]domain.TagCount, error)
	FindByTag(tag string) ([]string, error)
	GetTags(relPath string) (domain.TagSet, error)
}
