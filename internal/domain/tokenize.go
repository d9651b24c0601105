package domain

import (
	"path"
	"strings"
)

// TokenizeOptions controls tag generation from a file's location.
type TokenizeOptions struct {
	// FromFilename also derives tags from the filename stem.
	FromFilename bool
	// MaxDepth truncates the folder hierarchy to its first N segments.
	// Zero means unlimited.
	MaxDepth int
}

// minFilenameToken is the minimum length of a filename-derived token.
// Shorter fragments ("a", "of", "v2") are noise, not tags.
const minFilenameToken = 3

// TokenizePath derives candidate tags from an image's root-relative
// path. It returns, in order: one tag per folder segment, the
// hierarchical prefix chain of those segments (a, a/b, a/b/c), and
// optionally tokens from the filename stem. The sequence is
// deduplicated keeping first occurrence. The function is pure:
// identical inputs always yield the identical sequence.
func TokenizePath(relPath string, opts TokenizeOptions) []string {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	dir, file := path.Split(relPath)

	var segments []string
	for _, seg := range strings.Split(dir, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segments = append(segments, strings.ToLower(seg))
	}
	if opts.MaxDepth > 0 && len(segments) > opts.MaxDepth {
		segments = segments[:opts.MaxDepth]
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(tag string) {
		if _, dup := seen[tag]; dup || tag == "" {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	for _, seg := range segments {
		add(seg)
	}

	chain := ""
	for _, seg := range segments {
		if chain == "" {
			chain = seg
		} else {
			chain = chain + "/" + seg
		}
		add(chain)
	}

	if opts.FromFilename {
		for _, tok := range filenameTokens(file) {
			add(tok)
		}
	}

	return out
}

// filenameTokens splits a filename stem on '-' and '_' and keeps the
// tokens long enough to be meaningful tags. Digit-only tokens (date
// stamps and the like) are kept verbatim; everything else is
// lowercased.
func filenameTokens(file string) []string {
	stem := strings.TrimSuffix(file, path.Ext(file))
	var out []string
	for _, tok := range strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		if len(tok) < minFilenameToken {
			continue
		}
		if isDigits(tok) {
			out = append(out, tok)
		} else {
			out = append(out, strings.ToLower(tok))
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
