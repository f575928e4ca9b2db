package imagepkg

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ResizeCrop fits src into a box twice the target size, cuts a centered
// window with the target aspect ratio and resamples it to exactly w x h.
// Sources smaller than the target are upscaled.
func ResizeCrop(src image.Image, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid target %dx%d", ErrRender, w, h)
	}
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty source", ErrDecode)
	}
	fitted := imaging.Fit(src, 2*w, 2*h, imaging.Lanczos)
	fw, fh := fitted.Bounds().Dx(), fitted.Bounds().Dy()

	cw, ch := w, h
	if fw < w || fh < h {
		cw, ch = fw, fw*h/w
		if ch > fh {
			ch, cw = fh, fh*w/h
		}
		cw, ch = max(cw, 1), max(ch, 1)
	}
	cropped := imaging.CropCenter(fitted, cw, ch)
	return imaging.Resize(cropped, w, h, imaging.Lanczos), nil
}
