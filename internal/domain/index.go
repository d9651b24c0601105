package domain

import "time"

// IndexNode represents one cached image entry in the tag index.
type IndexNode struct {
	Path  string // Relative path from the collection root (primary key)
	Tags  TagSet // Embedded tags at last sync
	Mtime int64  // Unix timestamp for incremental sync
	Size  int64
}

// TagCount pairs a tag with the number of images carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// SyncStats holds statistics from an index sync operation.
type SyncStats struct {
	FilesScanned int
	NodesAdded   int
	NodesUpdated int
	NodesDeleted int
	Duration     time.Duration
}
