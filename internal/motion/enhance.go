package motion

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// luma is the ITU-R 601-2 transform in 16.16 fixed point, rounded.
func luma(c color.NRGBA) uint8 {
	return uint8((uint32(c.R)*19595 + uint32(c.G)*38470 + uint32(c.B)*7471 + 0x8000) >> 16)
}

// interpolate moves v away from base by factor: base + factor*(v-base).
func interpolate(base, v uint8, factor float64) uint8 {
	return clamp8(float64(base) + factor*(float64(v)-float64(base)))
}

// Brightness scales every color channel.
func Brightness(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: interpolate(0, c.R, factor), G: interpolate(0, c.G, factor), B: interpolate(0, c.B, factor), A: c.A}
	})
}

// MeanLuma is the rounded mean luma of img.
func MeanLuma(img image.Image) uint8 {
	src := imaging.Clone(img)
	n := len(src.Pix) / 4
	if n == 0 {
		return 0
	}
	var sum uint64
	for i := 0; i < len(src.Pix); i += 4 {
		sum += uint64(luma(color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2]}))
	}
	return uint8(math.Floor(float64(sum)/float64(n) + 0.5))
}

// Contrast stretches channels away from the mean luma.
func Contrast(img image.Image, factor float64) *image.NRGBA {
	mean := MeanLuma(img)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: interpolate(mean, c.R, factor), G: interpolate(mean, c.G, factor), B: interpolate(mean, c.B, factor), A: c.A}
	})
}

// Saturation pushes channels away from each pixel's own gray level.
func Saturation(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		l := luma(c)
		return color.NRGBA{R: interpolate(l, c.R, factor), G: interpolate(l, c.G, factor), B: interpolate(l, c.B, factor), A: c.A}
	})
}

var sharpenKernel = [9]float64{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

// Sharpen applies the classic 3x3 sharpen kernel, normalised by its sum of 16.
func Sharpen(img image.Image) *image.NRGBA {
	return imaging.Convolve3x3(img, sharpenKernel, &imaging.ConvolveOptions{Normalize: true})
}

// Blend mixes b into a: a*(1-alpha) + b*alpha. Both must be opaque and the same size.
func Blend(a, b image.Image, alpha float64) *image.NRGBA {
	return imaging.Overlay(a, b, image.Pt(0, 0), alpha)
}
