package imagepkg

import (
	"context"
	"image"

	"github.com/rs/zerolog/log"
)

// Background sources, in order of preference.
const (
	SourcePhoto    = "photo"
	SourceGradient = "gradient"
)

// BackgroundResolver picks the canvas a creative is drawn on: the product
// photo when it can be fetched, otherwise the category gradient.
type BackgroundResolver struct {
	fetcher Fetcher
}

func NewBackgroundResolver(f Fetcher) *BackgroundResolver {
	return &BackgroundResolver{fetcher: f}
}

// Resolve always returns a w x h image.
func (r *BackgroundResolver) Resolve(ctx context.Context, ref string, w, h int, category string) (image.Image, Outcome) {
	var stages []Stage[image.Image]
	if ref != "" && r.fetcher != nil {
		stages = append(stages, Stage[image.Image]{Name: SourcePhoto, Run: func() (image.Image, error) {
			src, err := r.fetcher.Fetch(ctx, ref)
			if err != nil {
				return nil, err
			}
			return ResizeCrop(src, w, h)
		}})
	}
	stages = append(stages, Stage[image.Image]{Name: SourceGradient, Run: func() (image.Image, error) {
		return Gradient(w, h, SchemeFor(category)), nil
	}})

	img, out, err := RunStages(stages...)
	if err != nil {
		img, out.Stage = Gradient(w, h, SchemeFor(category)), SourceGradient
	}
	if out.Degraded() {
		log.Warn().Err(out.Err()).Str("url", ref).Int("width", w).Int("height", h).
			Msg("background image unavailable, using gradient")
	}
	return img, out
}
