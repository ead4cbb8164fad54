package services

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// panoramaRatio is the width/height ratio past which an image counts as a
// panorama rather than a plain landscape.
const panoramaRatio = 2.0

// TaggingService produces heuristic tags for uploaded images. It stands in
// for an external vision model: callers treat it as an opaque tag
// producer and its tags run through the same normalization as any others.
type TaggingService struct{}

// NewTaggingService creates a TaggingService
func NewTaggingService() *TaggingService {
	return &TaggingService{}
}

// GenerateTags derives tags from the image content. An undecodable image
// yields no tags and no error; tagging is best effort.
func (s *TaggingService) GenerateTags(data []byte) []string {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil
	}

	tags := []string{orientationTag(img.Bounds())}
	tags = append(tags, toneTag(img))
	return tags
}

func orientationTag(bounds image.Rectangle) string {
	w, h := bounds.Dx(), bounds.Dy()
	switch {
	case w == h:
		return "square"
	case h > w:
		return "portrait"
	case float64(w)/float64(h) >= panoramaRatio:
		return "panorama"
	default:
		return "landscape"
	}
}

// toneTag classifies the overall luminance by shrinking the image to a
// single pixel and reading it back.
func toneTag(img image.Image) string {
	px := imaging.Resize(img, 1, 1, imaging.Box)
	r, g, b, _ := px.At(0, 0).RGBA()

	// Rec. 601 luma, 16-bit channels
	luma := (299*r + 587*g + 114*b) / 1000
	if luma > 0x8000 {
		return "bright"
	}
	return "dark"
}
