package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/youruser/adforge/internal/product"
)

const imagePrompt = `Analyze this product image and classify it into ONE of these categories based on visual style:
- "Artist" - Hand-drawn, artistic, creative illustrations
- "Cartoonist" - Cartoon-style, animated, playful illustrations
- "Sticker" - Sticker-style, simple, bold graphics
- "Realistic Image Store" - Photorealistic, professional product photography

Also provide:
1. A brief description (2-3 sentences)
2. 5-10 relevant keywords for advertising

Format your response as JSON with keys: description, category (must be one of the 4 above), keywords (array), category_description.
Be concise and marketing-focused.`

const productPrompt = `
Product Title: %s
Description: %s
Price: %s

Analyze this product and provide:
1. 10-15 bold, eye-catching marketing keywords (for ad text overlays) - make them SHORT and POWERFUL
2. 3-5 suggested ad captions (short, compelling, high-converting)
3. A primary call-to-action keyword (single word or short phrase like "SHOP NOW", "BUY NOW", "GET IT")
4. Target audience insights

Format as JSON with keys: keywords (array), captions (array), primary_cta, target_audience.
Focus on high-converting, bold keywords that work well in ad creatives. Keywords should be UPPERCASE and attention-grabbing.
`

// generateFunc sends parts to the model and returns its text.
type generateFunc func(ctx context.Context, parts []*genai.Part) (string, error)

// Gemini asks a Gemini model for analysis and falls back to Heuristic
// whenever the call or the parse fails.
type Gemini struct {
	model    string
	generate generateFunc
	limiter  *rate.Limiter
	fallback Heuristic
}

// NewGemini creates a client for the Gemini API. interval spaces out calls;
// zero disables limiting.
func NewGemini(ctx context.Context, apiKey, model string, interval time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	gen := func(ctx context.Context, parts []*genai.Part) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, []*genai.Content{{Role: "user", Parts: parts}}, nil)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return newGemini(model, gen, interval), nil
}

func newGemini(model string, gen generateFunc, interval time.Duration) *Gemini {
	g := &Gemini{model: model, generate: gen}
	if interval > 0 {
		g.limiter = rate.NewLimiter(rate.Every(interval), 2)
	}
	return g
}

func (g *Gemini) call(ctx context.Context, parts ...*genai.Part) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	start := time.Now()
	text, err := g.generate(ctx, parts)
	log.Debug().Str("model", g.model).Dur("elapsed", time.Since(start)).Int("chars", len(text)).Err(err).Msg("gemini call")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response from %s", g.model)
	}
	return text, nil
}

type imageReply struct {
	Description         looseText `json:"description"`
	Category            looseText `json:"category"`
	CategoryDescription looseText `json:"category_description"`
	Keywords            looseList `json:"keywords"`
}

func (g *Gemini) AnalyzeImage(ctx context.Context, data []byte, mimeType string) (product.ImageAnalysis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	text, err := g.call(ctx,
		&genai.Part{Text: imagePrompt},
		&genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
	)
	if err != nil {
		log.Warn().Err(err).Msg("image analysis failed, using defaults")
		a, _ := g.fallback.AnalyzeImage(ctx, data, mimeType)
		return a, ctx.Err()
	}
	return NormalizeImageAnalysis(parseImageReply(text)), nil
}

func parseImageReply(text string) product.ImageAnalysis {
	r, err := ParseJSON[imageReply](text)
	if err != nil {
		log.Warn().Err(err).Msg("unstructured image analysis, extracting keywords")
		return product.ImageAnalysis{
			Description: truncateText(text, 200),
			Category:    "General",
			Keywords:    product.ExtractKeywords(text),
		}
	}
	return product.ImageAnalysis{
		Description:         string(r.Description),
		Category:            string(r.Category),
		CategoryDescription: string(r.CategoryDescription),
		Keywords:            r.Keywords,
	}
}

type productReply struct {
	Keywords       looseList `json:"keywords"`
	Captions       looseList `json:"captions"`
	PrimaryCTA     looseText `json:"primary_cta"`
	TargetAudience looseText `json:"target_audience"`
}

func (g *Gemini) AnalyzeProduct(ctx context.Context, info product.Info) (product.Analysis, error) {
	prompt := fmt.Sprintf(productPrompt, orNA(info.Title), orNA(info.Description), orNA(info.Price))
	text, err := g.call(ctx, &genai.Part{Text: prompt})
	if err != nil {
		log.Warn().Err(err).Str("title", info.Title).Msg("product analysis failed, using defaults")
		a, _ := g.fallback.AnalyzeProduct(ctx, info)
		return a, ctx.Err()
	}
	return parseProductReply(text), nil
}

func parseProductReply(text string) product.Analysis {
	r, err := ParseJSON[productReply](text)
	if err != nil {
		log.Warn().Err(err).Msg("unstructured product analysis, extracting keywords")
		return product.Analysis{Keywords: product.ExtractKeywords(text)}
	}
	return product.Analysis{
		Keywords:       r.Keywords,
		Captions:       r.Captions,
		PrimaryCTA:     strings.TrimSpace(string(r.PrimaryCTA)),
		TargetAudience: string(r.TargetAudience),
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
