package motion

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/product"
)

// Tiers of the motion pipeline, most to least processed.
const (
	TierFull        = "full"
	TierReduced     = "reduced"
	TierPassthrough = "passthrough"
)

// Enhancement factors of the full chain.
const (
	brightnessFactor = 1.15
	contrastFactor   = 1.1
	saturationFactor = 1.2
	reducedFactor    = 1.1
	softenSigma      = 0.5
	glowSigma        = 2
	glowMix          = 0.3
	glowWeight       = 0.7
)

// Result is the processed image. URL and DownloadURL are the same data URI.
type Result struct {
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
	Tier        string `json:"tier"`
}

// Simulator gives a still image a "motion" look.
type Simulator struct{}

func New() *Simulator {
	return &Simulator{}
}

// Apply rejects only an empty upload. Otherwise, when the full chain breaks
// it falls back to a plain brightness boost, and when that breaks it returns
// the upload untouched. EXIF orientation is ignored so the output keeps the
// stored dimensions.
func (s *Simulator) Apply(data []byte, a product.ImageAnalysis) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty upload", imagepkg.ErrDecode)
	}
	uri, out, err := imagepkg.RunStages(
		imagepkg.Stage[string]{Name: TierFull, Run: func() (string, error) {
			img, err := imagepkg.DecodeStored(data)
			if err != nil {
				return "", err
			}
			return imagepkg.EncodeDataURI(FullChain(img))
		}},
		imagepkg.Stage[string]{Name: TierReduced, Run: func() (string, error) {
			img, err := imagepkg.DecodeStored(data)
			if err != nil {
				return "", err
			}
			return imagepkg.EncodeDataURI(Brightness(img, reducedFactor))
		}},
		imagepkg.Stage[string]{Name: TierPassthrough, Run: func() (string, error) {
			return imagepkg.WrapDataURI(data), nil
		}},
	)
	if err != nil {
		uri, out.Stage = imagepkg.WrapDataURI(data), TierPassthrough
	}
	if out.Degraded() {
		log.Warn().Err(out.Err()).Str("stage", out.Stage).Str("category", a.Category).Msg("motion effect degraded")
	} else {
		log.Debug().Int("bytes", len(uri)).Str("category", a.Category).Msg("motion effect applied")
	}
	return Result{URL: uri, DownloadURL: uri, Tier: out.Stage}, nil
}

// FullChain runs brightness, contrast, saturation, a soft blur, sharpening
// and a glow blend on an opaque copy of img.
func FullChain(img image.Image) *image.NRGBA {
	out := imagepkg.Opaque(img)
	out = Brightness(out, brightnessFactor)
	out = Contrast(out, contrastFactor)
	out = Saturation(out, saturationFactor)
	out = imaging.Blur(out, softenSigma)
	out = Sharpen(out)

	glow := Blend(out, imaging.Blur(out, glowSigma), glowMix)
	return Blend(out, glow, glowWeight)
}
