// Package sqlite implements the derived tag index. The database is a
// cache of the embedded tag state, rebuildable at any time; it is
// never the source of truth.
package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"imgtag/internal/config"
	"imgtag/internal/domain"
	"imgtag/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.TagIndex using SQLite
type Index struct {
	db       *sql.DB
	rootPath string
	dbPath   string
	store    ports.TagStore
	scanner  ports.Scanner

	// stale is latched at Open, before the meta rows are refreshed.
	stale bool
}

// Ensure Index implements TagIndex
var _ ports.TagIndex = (*Index)(nil)

// NewIndex creates a new SQLite tag index. Sync reads embedded tags
// through store for files the scanner reports as changed.
func NewIndex(store ports.TagStore, scanner ports.Scanner) *Index {
	return &Index{store: store, scanner: scanner}
}

// Open initializes the index for the given collection root. The
// database lives in a dot-directory under the root so it travels with
// the collection and is excluded from scans.
func (idx *Index) Open(rootPath string) error {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("cannot resolve root: %w", err)
	}
	idx.rootPath = abs
	idx.dbPath = filepath.Join(abs, config.IndexDirName, "index.db")

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// WAL mode for better concurrency with read-only commands
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS images (
			path TEXT PRIMARY KEY,
			tags TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			size INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS image_tags (
			path TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (path, tag)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_image_tags_tag ON image_tags(tag);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	idx.stale = idx.metaMismatch()
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be fully rebuilt
// because the schema changed or the collection root moved since the
// database was last written.
func (idx *Index) NeedsFullRebuild() bool {
	return idx.stale
}

func (idx *Index) metaMismatch() bool {
	var version, rootHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'root_path_hash'").Scan(&rootHash)

	return version != schemaVersion || rootHash != hashRootPath(idx.rootPath)
}

// hashRootPath returns a short hash of the root path
func hashRootPath(rootPath string) string {
	h := sha256.Sum256([]byte(rootPath))
	return hex.EncodeToString(h[:8])
}

// updateMeta updates the schema version and root path hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('root_path_hash', ?);
	`, schemaVersion, hashRootPath(idx.rootPath))
	return err
}

// TagCounts returns every distinct tag with the number of images
// carrying it, sorted by tag.
func (idx *Index) TagCounts() ([]domain.TagCount, error) {
	rows, err := idx.db.Query(`
		SELECT tag, COUNT(path) FROM image_tags
		GROUP BY tag ORDER BY tag
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.TagCount
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// FindByTag returns the relative paths of all images carrying the
// tag, sorted.
func (idx *Index) FindByTag(tag string) ([]string, error) {
	rows, err := idx.db.Query(`
		SELECT path FROM image_tags WHERE tag = ? ORDER BY path
	`, domain.NormalizeTag(tag))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// GetTags returns the cached tag set of one image by relative path.
func (idx *Index) GetTags(relPath string) (domain.TagSet, error) {
	var tags string
	err := idx.db.QueryRow(`SELECT tags FROM images WHERE path = ?`, relPath).Scan(&tags)
	if err == sql.ErrNoRows {
		return domain.NewTagSet(), nil
	}
	if err != nil {
		return domain.NewTagSet(), err
	}
	return domain.SplitTagField(tags), nil
}
