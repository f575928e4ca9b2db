package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/youruser/adforge/internal/config"
	"github.com/youruser/adforge/internal/creative"
	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/logging"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "adforge",
	Short:         "Render platform-sized ad creatives and motion-look images",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.LogLevel
		}
		logging.Init(level, true)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(creativesCmd, batchCmd, motionCmd, qrCmd)
}

func newGenerator() *creative.Generator {
	compositor := imagepkg.NewCompositor(imagepkg.NewHTTPFetcher(cfg.FetchTimeout), imagepkg.NewFontResolver(cfg.FontPath))
	return creative.NewGenerator(compositor, creative.WithConcurrency(cfg.MaxConcurrent))
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
