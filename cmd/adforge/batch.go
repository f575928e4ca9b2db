package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/youruser/adforge/internal/product"
	"github.com/youruser/adforge/internal/util"
)

var batchOpts struct {
	csv        string
	out        string
	categories []string
	match      string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render creatives for every product in a CSV file or directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := product.LoadPath(batchOpts.csv)
		if err != nil {
			return err
		}
		reqs = product.Filter(reqs, product.FilterOptions{Categories: batchOpts.categories, FreeWords: batchOpts.match})
		if len(reqs) == 0 {
			return fmt.Errorf("no products to render in %s", batchOpts.csv)
		}
		gen := newGenerator()
		for i, req := range reqs {
			dir := filepath.Join(batchOpts.out, fmt.Sprintf("%03d_%s", i+1, util.SafeFileName(req.Info.DisplayTitle())))
			if err := renderRequest(cmd, gen, req, dir); err != nil {
				return fmt.Errorf("row %d (%s): %w", i+1, req.Info.DisplayTitle(), err)
			}
		}
		log.Info().Int("products", len(reqs)).Str("out", batchOpts.out).Msg("batch complete")
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchOpts.csv, "csv", "products.csv", "product CSV file or directory of CSV files")
	f.StringVarP(&batchOpts.out, "out", "o", "out", "output directory")
	f.StringSliceVar(&batchOpts.categories, "category", nil, "only render these categories")
	f.StringVar(&batchOpts.match, "match", "", "only render products containing all of these words")
}
