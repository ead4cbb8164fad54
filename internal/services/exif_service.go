package services

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// EXIFService pulls the capture date out of uploaded images
type EXIFService struct{}

// NewEXIFService creates an EXIFService
func NewEXIFService() *EXIFService {
	return &EXIFService{}
}

// DateTaken extracts the capture timestamp from image bytes. Images
// without EXIF data (or without a date tag) return nil, not an error.
func (s *EXIFService) DateTaken(data []byte) *time.Time {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	t, err := x.DateTime()
	if err != nil {
		return nil
	}

	utc := t.UTC()
	return &utc
}
