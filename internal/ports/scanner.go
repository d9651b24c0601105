package ports

import "imgtag/internal/domain"

// Scanner enumerates image files below a root. Results are sorted by
// canonical path so every run and every summary is deterministic.
type Scanner interface {
	// Scan returns the images under root. With recursive false only the
	// root directory itself is listed. A root that points at a single
	// image file yields exactly that asset.
	Scan(root string, recursive bool) ([]*domain.ImageAsset, error)
}
