package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
)

// Text limits, in characters.
const (
	maxTitleLen   = 50
	maxKeywordLen = 20
	maxCTALen     = 15
)

var (
	panelColor   = color.NRGBA{A: 180}
	titleColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	keywordColor = color.NRGBA{R: 255, G: 255, A: 255}
	buttonColor  = color.NRGBA{R: 255, G: 100, A: 255}
	captionColor = titleColor
)

// OverlayText is the copy drawn over the background.
type OverlayText struct {
	Title   string
	Keyword string // empty means no keyword line
	CTA     string
}

// layout holds the pixel geometry for one canvas size.
type layout struct {
	w, h                 int
	panelTop             int
	titleTop, keywordTop int
	btnX, btnY           int
	btnW, btnH           int
	largePx, mediumPx    float64
}

func newLayout(w, h int) layout {
	l := layout{w: w, h: h}
	l.panelTop = h - int(float64(h)*0.3)
	l.titleTop = l.panelTop + int(float64(h)*0.05)
	l.keywordTop = l.titleTop + int(float64(h)*0.08)
	l.btnW = int(float64(w) * 0.4)
	l.btnH = int(float64(h) * 0.1)
	l.btnX = w/2 - l.btnW/2
	l.btnY = h - int(float64(h)*0.08) - int(float64(h)*0.05)
	l.largePx = float64(int(float64(h) * 0.08))
	l.mediumPx = float64(int(float64(h) * 0.05))
	return l
}

// RenderOverlay draws the panel, title, keyword and CTA button on a
// transparent layer. A failing element is redrawn with the built-in face at
// a fixed position, or left out; the failures are returned for logging.
func (c *Compositor) RenderOverlay(w, h int, t OverlayText) (image.Image, []error) {
	l := newLayout(w, h)
	dc := gg.NewContext(w, h)
	var errs []error

	if err := guard("panel", func() {
		dc.SetColor(panelColor)
		dc.DrawRectangle(0, float64(l.panelTop), float64(w), float64(h-l.panelTop))
		dc.Fill()
	}); err != nil {
		errs = append(errs, err)
	}

	large, largeDesc := c.fonts.Face(l.largePx)
	defer large.Close()
	medium, _ := c.fonts.Face(l.mediumPx)
	defer medium.Close()
	if !largeDesc.Scalable {
		log.Warn().Str("font", largeDesc.Name).Msg("scalable font unavailable, text sizes are approximate")
	}

	title := truncate(t.Title, maxTitleLen)
	errs = append(errs, c.drawText(dc, "title", title, large, titleColor, float64(w)/2, float64(l.titleTop), 1)...)

	if t.Keyword != "" {
		kw := truncate(strings.ToUpper(t.Keyword), maxKeywordLen)
		errs = append(errs, c.drawText(dc, "keyword", kw, medium, keywordColor, float64(w)/2, float64(l.keywordTop), 1)...)
	}

	if err := guard("button", func() {
		dc.SetColor(buttonColor)
		dc.DrawRoundedRectangle(float64(l.btnX), float64(l.btnY), float64(l.btnW), float64(l.btnH), float64(l.btnH)/4)
		dc.Fill()
	}); err != nil {
		errs = append(errs, err)
	}
	cta := truncate(strings.ToUpper(t.CTA), maxCTALen)
	centerY := float64(l.btnY) + float64(l.btnH)/2
	errs = append(errs, c.drawText(dc, "cta", cta, medium, captionColor, float64(w)/2, centerY, 0.5)...)

	return dc.Image(), errs
}

// drawText centers text horizontally on cx. ay anchors the line vertically:
// 1 puts the top of the text at y, 0.5 centers it on y.
func (c *Compositor) drawText(dc *gg.Context, name, text string, face font.Face, col color.Color, cx, y, ay float64) []error {
	if text == "" {
		return nil
	}
	err := guard(name, func() {
		dc.SetFontFace(face)
		dc.SetColor(col)
		tw, _ := dc.MeasureString(text)
		dc.DrawStringAnchored(text, cx-tw/2, y, 0, ay)
	})
	if err == nil {
		return nil
	}
	log.Warn().Err(err).Str("element", name).Msg("text rendering failed, using built-in font")
	errs := []error{err}
	if err := guard(name+" fallback", func() {
		fb, _ := BuiltinFace()
		dc.SetFontFace(fb)
		dc.SetColor(col)
		dc.DrawStringAnchored(text, cx, y, 0, ay)
	}); err != nil {
		log.Warn().Err(err).Str("element", name).Msg("element omitted")
		errs = append(errs, err)
	}
	return errs
}

func guard(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrRender, name, r)
		}
	}()
	fn()
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
