package sqlite

import (
	"os"
	"time"

	"imgtag/internal/domain"
)

// SyncFull performs a complete rebuild of the index, re-reading the
// embedded tags of every image under the root.
func (idx *Index) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	if _, err := idx.db.Exec(`DELETE FROM images`); err != nil {
		return nil, err
	}
	if _, err := idx.db.Exec(`DELETE FROM image_tags`); err != nil {
		return nil, err
	}

	assets, err := idx.scanner.Scan(idx.rootPath, true)
	if err != nil {
		return stats, err
	}

	for _, asset := range assets {
		stats.FilesScanned++
		fi, err := os.Stat(asset.CanonicalPath)
		if err != nil {
			continue
		}
		tags, err := idx.store.ReadTags(asset.CanonicalPath)
		if err != nil {
			continue // unreadable metadata: leave the file out of the cache
		}
		node := domain.IndexNode{
			Path:  asset.RelativePath,
			Tags:  tags,
			Mtime: fi.ModTime().Unix(),
			Size:  asset.SizeBytes,
		}
		if err := idx.upsert(node); err != nil {
			return stats, err
		}
		stats.NodesAdded++
	}

	if err := idx.touchSyncTime(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental re-reads tags only for files whose mtime changed
// since they were cached, and drops entries for files that vanished.
func (idx *Index) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	cached := make(map[string]int64) // relative path -> cached mtime
	rows, err := idx.db.Query(`SELECT path, mtime FROM images`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			rows.Close()
			return nil, err
		}
		cached[path] = mtime
	}
	rows.Close()

	assets, err := idx.scanner.Scan(idx.rootPath, true)
	if err != nil {
		return stats, err
	}

	seen := make(map[string]bool, len(assets))
	for _, asset := range assets {
		stats.FilesScanned++
		seen[asset.RelativePath] = true

		fi, err := os.Stat(asset.CanonicalPath)
		if err != nil {
			continue
		}
		mtime := fi.ModTime().Unix()
		if prev, ok := cached[asset.RelativePath]; ok && prev == mtime {
			continue
		}

		tags, err := idx.store.ReadTags(asset.CanonicalPath)
		if err != nil {
			continue
		}
		node := domain.IndexNode{
			Path:  asset.RelativePath,
			Tags:  tags,
			Mtime: mtime,
			Size:  asset.SizeBytes,
		}
		if err := idx.upsert(node); err != nil {
			return stats, err
		}
		if _, ok := cached[asset.RelativePath]; ok {
			stats.NodesUpdated++
		} else {
			stats.NodesAdded++
		}
	}

	for path := range cached {
		if !seen[path] {
			if err := idx.deleteNode(path); err != nil {
				return stats, err
			}
			stats.NodesDeleted++
		}
	}

	if err := idx.touchSyncTime(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// upsert writes one image's cache row and its tag rows atomically.
func (idx *Index) upsert(node domain.IndexNode) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO images (path, tags, mtime, size)
		VALUES (?, ?, ?, ?)
	`, node.Path, node.Tags.Joined(), node.Mtime, node.Size)
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`DELETE FROM image_tags WHERE path = ?`, node.Path); err != nil {
		tx.Rollback()
		return err
	}
	for _, tag := range node.Tags.Sorted() {
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO image_tags (path, tag) VALUES (?, ?)
		`, node.Path, tag); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (idx *Index) deleteNode(relPath string) error {
	if _, err := idx.db.Exec(`DELETE FROM images WHERE path = ?`, relPath); err != nil {
		return err
	}
	_, err := idx.db.Exec(`DELETE FROM image_tags WHERE path = ?`, relPath)
	return err
}

func (idx *Index) touchSyncTime() error {
	_, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())
	return err
}
