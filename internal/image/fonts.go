package imagepkg

import (
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// Bold fonts commonly present on Linux, macOS and Windows hosts.
var systemBoldFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Bold.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	`C:\Windows\Fonts\arialbd.ttf`,
}

// FontDescriptor describes the face actually handed out.
type FontDescriptor struct {
	Name     string
	Size     float64
	Scalable bool
}

// BuiltinFontName identifies the fixed bitmap face of last resort.
const BuiltinFontName = "basicfont-7x13"

// FontResolver hands out bold faces at a requested pixel size. It checks
// candidates once and always has an answer: a configured path, then system
// fonts, then the embedded Go Bold, then a fixed-size bitmap face.
type FontResolver struct {
	customPath string

	once     sync.Once
	primary  *opentype.Font
	name     string
	embedded *opentype.Font
}

func NewFontResolver(customPath string) *FontResolver {
	return &FontResolver{customPath: customPath}
}

func (r *FontResolver) load() {
	candidates := systemBoldFonts
	if r.customPath != "" {
		candidates = append([]string{r.customPath}, candidates...)
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("unusable font file")
			continue
		}
		r.primary, r.name = f, p
		break
	}
	if f, err := opentype.Parse(gobold.TTF); err == nil {
		r.embedded = f
	} else {
		log.Warn().Err(err).Msg("embedded font unavailable")
	}
	if r.primary == nil {
		log.Debug().Msg("no system bold font found, using embedded Go Bold")
	}
}

// Face returns a face close to px pixels tall. The caller owns the face.
func (r *FontResolver) Face(px float64) (font.Face, FontDescriptor) {
	r.once.Do(r.load)
	if px >= 1 {
		if r.primary != nil {
			if face, err := newFace(r.primary, px); err == nil {
				return face, FontDescriptor{Name: r.name, Size: px, Scalable: true}
			}
		}
		if r.embedded != nil {
			if face, err := newFace(r.embedded, px); err == nil {
				return face, FontDescriptor{Name: "gobold", Size: px, Scalable: true}
			}
		}
	}
	return BuiltinFace()
}

// BuiltinFace is the guaranteed-available fallback.
func BuiltinFace() (font.Face, FontDescriptor) {
	return basicfont.Face7x13, FontDescriptor{Name: BuiltinFontName, Size: 13}
}

func newFace(f *opentype.Font, px float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
