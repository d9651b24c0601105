// Package filesystem implements the file enumerator and the copy/link
// primitive on the local filesystem.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// Scanner enumerates image files on disk.
type Scanner struct {
	// SkipDirs are directory names never descended into, in addition
	// to hidden directories and the sorted-view sentinel.
	SkipDirs map[string]bool
}

var _ ports.Scanner = (*Scanner)(nil)

// NewScanner creates a scanner with the default skip list.
func NewScanner(sentinel string) *Scanner {
	return &Scanner{
		SkipDirs: map[string]bool{
			sentinel:     true,
			".imgtag":    true,
			".stfolder":  true,
			".Trashes":   true,
			".fseventsd": true,
		},
	}
}

// Scan returns the images under root sorted by canonical path. root
// may also name a single image file.
func (s *Scanner) Scan(root string, recursive bool) ([]*domain.ImageAsset, error) {
	root = ExpandHome(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	if !info.IsDir() {
		if !domain.IsImagePath(root) {
			return nil, nil
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		return []*domain.ImageAsset{assetFor(abs, filepath.Base(abs), info.Size())}, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var assets []*domain.ImageAsset

	if !recursive {
		entries, err := os.ReadDir(absRoot)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", absRoot, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || !domain.IsImagePath(entry.Name()) {
				continue
			}
			fi, err := entry.Info()
			if err != nil {
				continue
			}
			assets = append(assets, assetFor(filepath.Join(absRoot, entry.Name()), entry.Name(), fi.Size()))
		}
	} else {
		err = filepath.Walk(absRoot, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			if fi.IsDir() {
				name := fi.Name()
				if path != absRoot && (strings.HasPrefix(name, ".") || s.SkipDirs[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(fi.Name(), ".") || !domain.IsImagePath(path) {
				return nil
			}
			rel, err := filepath.Rel(absRoot, path)
			if err != nil {
				return nil
			}
			assets = append(assets, assetFor(path, rel, fi.Size()))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CanonicalPath < assets[j].CanonicalPath
	})
	return assets, nil
}

func assetFor(abs, rel string, size int64) *domain.ImageAsset {
	return &domain.ImageAsset{
		CanonicalPath: abs,
		RelativePath:  filepath.ToSlash(rel),
		SizeBytes:     size,
		Format:        domain.FormatForExt(filepath.Ext(abs)),
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
