package commands

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"imgtag/internal/domain"
)

// fakeStore is an in-memory TagStore keyed by canonical path.
type fakeStore struct {
	mu   sync.Mutex
	tags map[string]domain.TagSet

	readErr  map[string]error
	writeErr map[string]error
	writes   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tags:     make(map[string]domain.TagSet),
		readErr:  make(map[string]error),
		writeErr: make(map[string]error),
	}
}

func (s *fakeStore) ReadTags(path string) (domain.TagSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readErr[path]; err != nil {
		return domain.TagSet{}, err
	}
	if ts, ok := s.tags[path]; ok {
		return ts.Clone(), nil
	}
	return domain.NewTagSet(), nil
}

func (s *fakeStore) WriteTags(path string, tags domain.TagSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr[path]; err != nil {
		return err
	}
	s.tags[path] = tags.Clone()
	s.writes++
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakeScanner returns a fixed asset list regardless of root.
type fakeScanner struct {
	assets []*domain.ImageAsset
	err    error
}

func (s *fakeScanner) Scan(root string, recursive bool) ([]*domain.ImageAsset, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.ImageAsset, len(s.assets))
	copy(out, s.assets)
	sort.Slice(out, func(i, j int) bool { return out[i].CanonicalPath < out[j].CanonicalPath })
	return out, nil
}

func asset(root, rel string) *domain.ImageAsset {
	return &domain.ImageAsset{
		CanonicalPath: filepath.Join(root, filepath.FromSlash(rel)),
		RelativePath:  rel,
		Format:        domain.FormatForExt(filepath.Ext(rel)),
	}
}

// fakeFiles records copy/link/remove calls instead of touching disk.
type fakeFiles struct {
	copied  map[string]string // dst -> src
	linked  map[string]string
	present map[string]bool
	removed []string
	freed   int64

	failDst map[string]error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{
		copied:  make(map[string]string),
		linked:  make(map[string]string),
		present: make(map[string]bool),
		failDst: make(map[string]error),
	}
}

func (f *fakeFiles) Copy(src, dst string) error {
	if err := f.failDst[dst]; err != nil {
		return err
	}
	if f.present[dst] {
		return errors.New("destination exists")
	}
	f.copied[dst] = src
	f.present[dst] = true
	return nil
}

func (f *fakeFiles) Link(src, dst string) error {
	if err := f.failDst[dst]; err != nil {
		return err
	}
	if f.present[dst] {
		return errors.New("destination exists")
	}
	f.linked[dst] = src
	f.present[dst] = true
	return nil
}

func (f *fakeFiles) Exists(dst string) bool { return f.present[dst] }

func (f *fakeFiles) RemoveTree(path string) (int64, error) {
	f.removed = append(f.removed, path)
	for p := range f.present {
		if p == path || strings.HasPrefix(p, path+string(filepath.Separator)) {
			delete(f.present, p)
		}
	}
	return f.freed, nil
}

// fakeIndex serves canned tag data without a database.
type fakeIndex struct {
	counts  []domain.TagCount
	byTag   map[string][]string
	tags    map[string]domain.TagSet
	rebuilt bool
	synced  bool
	opened  string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		byTag: make(map[string][]string),
		tags:  make(map[string]domain.TagSet),
	}
}

func (i *fakeIndex) Open(rootPath string) error { i.opened = rootPath; return nil }
func (i *fakeIndex) Close() error               { return nil }
func (i *fakeIndex) NeedsFullRebuild() bool     { return i.rebuilt }

func (i *fakeIndex) SyncIncremental() (*domain.SyncStats, error) {
	i.synced = true
	return &domain.SyncStats{}, nil
}

func (i *fakeIndex) SyncFull() (*domain.SyncStats, error) {
	i.synced = true
	return &domain.SyncStats{}, nil
}

func (i *fakeIndex) TagCounts() ([]domain.TagCount, error) {
	return i.counts, nil
}

func (i *fakeIndex) FindByTag(tag string) ([]string, error) {
	return i.byTag[tag], nil
}

func (i *fakeIndex) GetTags(relPath string) (domain.TagSet, error) {
	if ts, ok := i.tags[relPath]; ok {
		return ts.Clone(), nil
	}
	return domain.NewTagSet(), nil
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
