package creative

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/product"
)

// DefaultConcurrency bounds the sizes rendered at once for one request.
const DefaultConcurrency = 3

// Generator renders one creative per size profile.
type Generator struct {
	compositor *imagepkg.Compositor
	profiles   []SizeProfile
	limit      int
}

type Option func(*Generator)

// WithConcurrency sets how many sizes render in parallel.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.limit = n
		}
	}
}

// WithProfiles replaces the default platform list.
func WithProfiles(ps ...SizeProfile) Option {
	return func(g *Generator) {
		if len(ps) > 0 {
			g.profiles = ps
		}
	}
}

func NewGenerator(c *imagepkg.Compositor, opts ...Option) *Generator {
	g := &Generator{compositor: c, profiles: Profiles(), limit: DefaultConcurrency}
	for _, o := range opts {
		o(g)
	}
	return g
}

// DesignFor maps product data to the drawing inputs. An empty category falls back
// to the neutral gradient.
func DesignFor(info product.Info, a product.Analysis, category string) imagepkg.Design {
	return imagepkg.Design{
		ImageURL: strings.TrimSpace(info.ImageURL),
		Category: category,
		Text: imagepkg.OverlayText{
			Title:   info.DisplayTitle(),
			Keyword: a.LeadKeyword(),
			CTA:     a.CTA(),
		},
	}
}

type rendered struct {
	url    string
	source string
}

// Generate renders every profile. It never fails: a size that cannot be
// composited gets a placeholder, and a placeholder that cannot be encoded
// gets the fixed minimal image.
func (g *Generator) Generate(ctx context.Context, info product.Info, a product.Analysis, category string) Set {
	design := DesignFor(info, a, category)
	items := make([]Creative, len(g.profiles))
	start := time.Now()

	var eg errgroup.Group
	eg.SetLimit(g.limit)
	for i, p := range g.profiles {
		eg.Go(func() error {
			items[i] = g.render(ctx, design, p)
			return nil
		})
	}
	_ = eg.Wait()

	log.Info().Str("title", design.Text.Title).Str("category", category).Int("creatives", len(items)).
		Dur("elapsed", time.Since(start)).Msg("creatives generated")
	return Set{items: items}
}

func (g *Generator) render(ctx context.Context, design imagepkg.Design, p SizeProfile) Creative {
	r, out, err := imagepkg.RunStages(
		imagepkg.Stage[rendered]{Name: "composite", Run: func() (rendered, error) {
			img, bg := g.compositor.Compose(ctx, design, p.Width, p.Height)
			uri, err := imagepkg.EncodeDataURI(img)
			if err != nil {
				return rendered{}, err
			}
			return rendered{url: uri, source: bg.Stage}, nil
		}},
		imagepkg.Stage[rendered]{Name: SourcePlaceholder, Run: func() (rendered, error) {
			uri, err := imagepkg.EncodeDataURI(imagepkg.Placeholder(p.Width, p.Height))
			return rendered{url: uri, source: SourcePlaceholder}, err
		}},
		imagepkg.Stage[rendered]{Name: SourceMinimal, Run: func() (rendered, error) {
			return rendered{url: imagepkg.MinimalPNG, source: SourceMinimal}, nil
		}},
	)
	if err != nil {
		r = rendered{url: imagepkg.MinimalPNG, source: SourceMinimal}
	}
	if out.Degraded() {
		log.Warn().Err(out.Err()).Str("platform", p.ID).Str("stage", out.Stage).Msg("creative degraded")
	} else {
		log.Debug().Str("platform", p.ID).Str("source", r.source).Int("bytes", len(r.url)).Msg("creative rendered")
	}
	return Creative{
		Platform: p.ID,
		URL:      r.url,
		Size:     p.SizeLabel(),
		Ratio:    p.Ratio,
		Source:   r.source,
	}
}
