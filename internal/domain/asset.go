package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported image format
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatWEBP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	case FormatWEBP:
		return "WEBP"
	case FormatTIFF:
		return "TIFF"
	default:
		return "unknown"
	}
}

// FormatForExt maps a file extension (with or without the leading dot)
// to its image format. Unsupported extensions map to FormatUnknown.
func FormatForExt(ext string) Format {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "jpg", "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "webp":
		return FormatWEBP
	case "tif", "tiff":
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// IsImagePath reports whether the path has a supported image extension.
func IsImagePath(path string) bool {
	return FormatForExt(filepath.Ext(path)) != FormatUnknown
}

// ImageAsset is one enumerated image file. Instances live for a single
// command invocation; the embedded tags on disk remain the only
// persistent state.
type ImageAsset struct {
	CanonicalPath string // absolute path, unique key
	RelativePath  string // relative to the declared root, slash-separated
	Tags          TagSet
	SizeBytes     int64
	Format        Format
}

// Name returns the bare filename of the asset.
func (a *ImageAsset) Name() string {
	return filepath.Base(a.CanonicalPath)
}
