// Package analysis turns product images and product data into marketing
// inputs for the creative generator.
package analysis

import (
	"context"
	"fmt"

	"github.com/youruser/adforge/internal/config"
	"github.com/youruser/adforge/internal/product"
)

// Provider classifies images and writes ad copy.
type Provider interface {
	AnalyzeImage(ctx context.Context, data []byte, mimeType string) (product.ImageAnalysis, error)
	AnalyzeProduct(ctx context.Context, info product.Info) (product.Analysis, error)
}

// New builds the provider selected by the configuration.
func New(ctx context.Context, cfg config.Config) (Provider, error) {
	switch cfg.AnalysisProvider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AnalysisRateInterval)
	case config.ProviderHeuristic, "":
		return Heuristic{}, nil
	default:
		return nil, fmt.Errorf("unknown analysis provider %q", cfg.AnalysisProvider)
	}
}
