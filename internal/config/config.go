package config

import "os"

const (
	// SentinelDir is the reserved folder name that holds sorted views.
	// Everything below it is a reproducible copy and safe to delete.
	SentinelDir = "_sorted"

	// IndexDirName is where the derived tag index database lives,
	// relative to the collection root.
	IndexDirName = ".imgtag"
)

// RootPath returns the collection root from the IMGTAG_ROOT env var,
// falling back to the current directory.
func RootPath() string {
	if env := os.Getenv("IMGTAG_ROOT"); env != "" {
		return env
	}
	return "."
}

// ExiftoolPath returns an override for the exiftool binary from
// IMGTAG_EXIFTOOL, or empty to use the one on PATH.
func ExiftoolPath() string {
	return os.Getenv("IMGTAG_EXIFTOOL")
}
