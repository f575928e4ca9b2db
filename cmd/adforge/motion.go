package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/youruser/adforge/internal/analysis"
	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/motion"
	"github.com/youruser/adforge/internal/util"
)

var motionOpts struct {
	in  string
	out string
}

var motionCmd = &cobra.Command{
	Use:   "motion",
	Short: "Apply the motion-look effect to an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(motionOpts.in)
		if err != nil {
			return err
		}
		res, err := motion.New().Apply(data, analysis.DefaultImageAnalysis())
		if err != nil {
			return fmt.Errorf("%s: %w", motionOpts.in, err)
		}
		b, err := imagepkg.DataURIBytes(res.URL)
		if err != nil {
			return fmt.Errorf("motion output: %w", err)
		}
		if err := util.WriteFile(motionOpts.out, b); err != nil {
			return err
		}
		log.Info().Str("file", motionOpts.out).Str("tier", res.Tier).Msg("motion image written")
		return nil
	},
}

func init() {
	motionCmd.Flags().StringVar(&motionOpts.in, "in", "", "input image")
	motionCmd.Flags().StringVarP(&motionOpts.out, "out", "o", "motion.png", "output PNG")
	_ = motionCmd.MarkFlagRequired("in")
}
