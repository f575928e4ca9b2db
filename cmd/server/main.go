package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/youruser/adforge/internal/analysis"
	"github.com/youruser/adforge/internal/api"
	"github.com/youruser/adforge/internal/config"
	"github.com/youruser/adforge/internal/creative"
	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/logging"
	"github.com/youruser/adforge/internal/motion"
	"github.com/youruser/adforge/internal/scraper"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(cfg.LogLevel, cfg.LogPretty)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := analysis.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create analysis provider")
	}
	compositor := imagepkg.NewCompositor(imagepkg.NewHTTPFetcher(cfg.FetchTimeout), imagepkg.NewFontResolver(cfg.FontPath))
	gen := creative.NewGenerator(compositor, creative.WithConcurrency(cfg.MaxConcurrent))
	h := api.NewHandler(cfg, scraper.New(cfg.ScrapeTimeout, cfg.ScrapeCache), provider, gen, motion.New())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("analysis", cfg.AnalysisProvider).Strs("origins", cfg.AllowedOrigins).
		Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
