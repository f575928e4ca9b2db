package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/youruser/adforge/internal/creative"
	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/product"
	"github.com/youruser/adforge/internal/util"
)

var creativesOpts struct {
	title    string
	keywords []string
	cta      string
	category string
	imageURL string
	out      string
}

var creativesCmd = &cobra.Command{
	Use:   "creatives",
	Short: "Render one product's creatives for every platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := product.Request{
			Info:     product.Info{Title: creativesOpts.title, ImageURL: creativesOpts.imageURL},
			Analysis: product.Analysis{Keywords: creativesOpts.keywords, PrimaryCTA: creativesOpts.cta},
			Category: creativesOpts.category,
		}
		return renderRequest(cmd, newGenerator(), req, creativesOpts.out)
	},
}

func init() {
	f := creativesCmd.Flags()
	f.StringVar(&creativesOpts.title, "title", "", "product title")
	f.StringSliceVar(&creativesOpts.keywords, "keyword", nil, "marketing keyword (repeatable, the first is drawn)")
	f.StringVar(&creativesOpts.cta, "cta", product.DefaultCTA, "call to action")
	f.StringVar(&creativesOpts.category, "category", imagepkg.CategoryRealistic, "visual style category")
	f.StringVar(&creativesOpts.imageURL, "image-url", "", "product image URL")
	f.StringVarP(&creativesOpts.out, "out", "o", "out", "output directory")
}

// renderRequest writes one PNG per platform plus manifest.txt into dir.
func renderRequest(cmd *cobra.Command, gen *creative.Generator, req product.Request, dir string) error {
	set := gen.Generate(cmd.Context(), req.Info, req.Analysis, req.Category)
	for _, c := range set.All() {
		b, err := imagepkg.DataURIBytes(c.URL)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Platform, err)
		}
		path := filepath.Join(dir, creative.FileName(c))
		if err := util.WriteFile(path, b); err != nil {
			return err
		}
		log.Info().Str("file", path).Str("size", c.Size).Str("source", c.Source).Msg("creative written")
	}
	manifest := creative.ExportManifest(req.Info.DisplayTitle(), set)
	return util.WriteFile(filepath.Join(dir, "manifest.txt"), []byte(manifest))
}
