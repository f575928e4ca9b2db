package imagepkg

import "image/color"

// Visual style categories produced by image analysis.
const (
	CategoryArtist     = "Artist"
	CategoryCartoonist = "Cartoonist"
	CategorySticker    = "Sticker"
	CategoryRealistic  = "Realistic Image Store"
)

// ColorScheme is the pair of gradient endpoints for a category, top to bottom.
type ColorScheme struct {
	Start color.NRGBA
	End   color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// NeutralScheme is used for any category outside the fixed vocabulary.
var NeutralScheme = ColorScheme{Start: rgb(240, 240, 250), End: rgb(220, 220, 240)}

var colorSchemes = map[string]ColorScheme{
	CategoryArtist:     {Start: rgb(100, 50, 150), End: rgb(200, 100, 200)},
	CategoryCartoonist: {Start: rgb(255, 200, 100), End: rgb(255, 150, 50)},
	CategorySticker:    {Start: rgb(100, 200, 255), End: rgb(50, 150, 255)},
	CategoryRealistic:  NeutralScheme,
}

// SchemeFor looks up the gradient for a category. Matching is case-sensitive.
func SchemeFor(category string) ColorScheme {
	if s, ok := colorSchemes[category]; ok {
		return s
	}
	return NeutralScheme
}

// Categories lists the recognised style categories.
func Categories() []string {
	return []string{CategoryArtist, CategoryCartoonist, CategorySticker, CategoryRealistic}
}

// IsCategory reports whether s is part of the style vocabulary.
func IsCategory(s string) bool {
	_, ok := colorSchemes[s]
	return ok
}
