package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
)

// PlaceholderSize is used when no dimensions are requested.
const PlaceholderSize = 1024

// MinimalPNG is a fixed 1x1 image, the last resort when nothing can be encoded.
const MinimalPNG = DataURIPrefix + "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

// PlaceholderColor fills placeholders.
var PlaceholderColor = NeutralScheme.Start

// Placeholder returns a flat light image of the given size.
func Placeholder(w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		w, h = PlaceholderSize, PlaceholderSize
	}
	return imaging.New(w, h, PlaceholderColor)
}

// PlaceholderDataURI never fails: when even the placeholder cannot be encoded
// it returns MinimalPNG.
func PlaceholderDataURI(w, h int) string {
	uri, err := EncodeDataURI(Placeholder(w, h))
	if err != nil {
		return MinimalPNG
	}
	return uri
}
