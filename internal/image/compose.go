package imagepkg

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// Design is everything needed to draw one creative.
type Design struct {
	ImageURL string
	Category string
	Text     OverlayText
}

// Compositor renders creatives: background, overlay, flatten.
type Compositor struct {
	backgrounds *BackgroundResolver
	fonts       *FontResolver
}

func NewCompositor(f Fetcher, fonts *FontResolver) *Compositor {
	if fonts == nil {
		fonts = NewFontResolver("")
	}
	return &Compositor{backgrounds: NewBackgroundResolver(f), fonts: fonts}
}

// Compose returns an opaque w x h creative. The outcome names the background
// source and carries every absorbed failure.
func (c *Compositor) Compose(ctx context.Context, design Design, w, h int) (*image.NRGBA, Outcome) {
	bg, out := c.backgrounds.Resolve(ctx, design.ImageURL, w, h, design.Category)
	layer, errs := c.RenderOverlay(w, h, design.Text)
	for _, err := range errs {
		out.Failures = append(out.Failures, StageError{Stage: "overlay", Err: err})
	}
	if len(errs) > 0 {
		log.Warn().Int("failures", len(errs)).Int("width", w).Int("height", h).Msg("overlay partially rendered")
	}
	return Opaque(imaging.Overlay(bg, layer, image.Pt(0, 0), 1.0)), out
}

// Opaque drops the alpha channel, keeping color values as stored.
func Opaque(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
