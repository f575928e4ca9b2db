package analysis

import (
	"context"
	"strings"

	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/product"
)

// Default image classification.
const (
	DefaultImageDescription    = "High-quality image ready for motion effects"
	DefaultCategoryDescription = "Standard product image"
	DefaultAudience            = "General consumers"
)

// Heuristic produces fixed copy without calling any model.
type Heuristic struct{}

func (Heuristic) AnalyzeImage(context.Context, []byte, string) (product.ImageAnalysis, error) {
	return DefaultImageAnalysis(), nil
}

func (Heuristic) AnalyzeProduct(_ context.Context, info product.Info) (product.Analysis, error) {
	return DefaultProductAnalysis(info), nil
}

func DefaultImageAnalysis() product.ImageAnalysis {
	return product.ImageAnalysis{
		Description:         DefaultImageDescription,
		Category:            imagepkg.CategoryRealistic,
		CategoryDescription: DefaultCategoryDescription,
		Keywords:            []string{"premium", "quality", "professional", "modern", "creative"},
	}
}

// DefaultProductAnalysis builds stock keywords, the first five title words
// and three title-based captions.
func DefaultProductAnalysis(info product.Info) product.Analysis {
	title := info.Title
	if title == "" {
		title = product.DefaultTitle
	}
	keywords := []string{"PREMIUM", "QUALITY", "EXCLUSIVE", "LIMITED", "NOW"}
	words := strings.Fields(strings.ToUpper(title))
	keywords = append(keywords, words[:min(len(words), 5)]...)
	return product.Analysis{
		Keywords:       keywords,
		Captions:       []string{"Discover " + title, "Premium " + title, "Get " + title + " Now"},
		PrimaryCTA:     product.DefaultCTA,
		TargetAudience: DefaultAudience,
	}
}

// NormalizeImageAnalysis forces the category into the known vocabulary and
// fills blank fields with defaults.
func NormalizeImageAnalysis(a product.ImageAnalysis) product.ImageAnalysis {
	if !imagepkg.IsCategory(strings.TrimSpace(a.Category)) {
		a.Category = imagepkg.CategoryRealistic
	} else {
		a.Category = strings.TrimSpace(a.Category)
	}
	if strings.TrimSpace(a.CategoryDescription) == "" {
		a.CategoryDescription = DefaultCategoryDescription
	}
	if strings.TrimSpace(a.Description) == "" {
		a.Description = DefaultImageDescription
	}
	return a
}
