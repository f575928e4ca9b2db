package imagepkg

import (
	"image"
	"image/color"
)

// Gradient paints a vertical linear gradient. Row y uses ratio y/h, so row 0
// is exactly the start color and the last row stops just short of the end color.
func Gradient(w, h int, s ColorScheme) *image.NRGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ratio := float64(y) / float64(h)
		c := color.NRGBA{
			R: lerp(s.Start.R, s.End.R, ratio),
			G: lerp(s.Start.G, s.End.G, ratio),
			B: lerp(s.Start.B, s.End.B, ratio),
			A: 0xff,
		}
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// lerp truncates, which is a floor for the non-negative values involved.
func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
