// Package exif extracts capture details from image files for the info
// command. Tags live in XMP and are read elsewhere; this only looks at
// the EXIF block.
package exif

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Details holds the optional EXIF facts of one image. Zero values mean
// the field was absent.
type Details struct {
	CaptureDate time.Time
	CameraMake  string
	CameraModel string
}

// Read returns whatever EXIF details the file carries. Files without
// an EXIF block (PNG, WEBP) yield empty Details and no error; only an
// unreadable file is an error.
func Read(path string) (Details, error) {
	f, err := os.Open(path)
	if err != nil {
		return Details{}, err
	}
	defer f.Close()

	var d Details
	x, err := exif.Decode(f)
	if err != nil {
		return d, nil
	}

	if t, err := x.DateTime(); err == nil {
		d.CaptureDate = t
	}
	if tag, err := x.Get(exif.Make); err == nil {
		if v, err := tag.StringVal(); err == nil {
			d.CameraMake = v
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			d.CameraModel = v
		}
	}
	return d, nil
}
