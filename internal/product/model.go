package product

import "strings"

// Defaults applied when a field is missing.
const (
	DefaultTitle = "Product"
	DefaultCTA   = "Shop Now"
	NoPrice      = "Price not available"
)

// Info describes a product as scraped or supplied by the caller.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url,omitempty"`
	Department  string `json:"department,omitempty"`
}

// DisplayTitle is the title drawn on creatives.
func (i Info) DisplayTitle() string {
	if t := strings.TrimSpace(i.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// Analysis is the marketing copy derived from a product.
type Analysis struct {
	Keywords       []string `json:"keywords"`
	Captions       []string `json:"captions"`
	PrimaryCTA     string   `json:"primary_cta"`
	TargetAudience string   `json:"target_audience,omitempty"`
}

// CTA returns the call to action, defaulting to "Shop Now".
func (a Analysis) CTA() string {
	if strings.TrimSpace(a.PrimaryCTA) != "" {
		return a.PrimaryCTA
	}
	return DefaultCTA
}

// LeadKeyword is the first of the top five keywords, or "" when there is none.
func (a Analysis) LeadKeyword() string {
	top := TopKeywords(a.Keywords, 5)
	if len(top) == 0 {
		return ""
	}
	return top[0]
}

// ImageAnalysis is the visual classification of a product image.
type ImageAnalysis struct {
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	CategoryDescription string   `json:"category_description"`
	Keywords            []string `json:"keywords"`
}

// Request bundles everything needed to render one product's creatives.
type Request struct {
	Info     Info
	Analysis Analysis
	Category string
}
