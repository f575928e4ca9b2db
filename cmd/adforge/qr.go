package main

import (
	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/util"
)

var qrOpts struct {
	text string
	size int
	out  string
}

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Write a QR code PNG for a product link",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := imagepkg.GenerateQRPNG(qrOpts.text, qrOpts.size)
		if err != nil {
			return err
		}
		return util.WriteFile(qrOpts.out, b)
	},
}

func init() {
	qrCmd.Flags().StringVar(&qrOpts.text, "text", "", "text or URL to encode")
	qrCmd.Flags().IntVar(&qrOpts.size, "size", 400, "edge length in pixels")
	qrCmd.Flags().StringVarP(&qrOpts.out, "out", "o", "qr.png", "output PNG")
	_ = qrCmd.MarkFlagRequired("text")
}
