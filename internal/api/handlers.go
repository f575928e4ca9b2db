package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/adforge/internal/analysis"
	"github.com/youruser/adforge/internal/config"
	"github.com/youruser/adforge/internal/creative"
	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/motion"
	"github.com/youruser/adforge/internal/product"
	"github.com/youruser/adforge/internal/util"
)

// ProductSource resolves a product page to product details.
type ProductSource interface {
	Scrape(ctx context.Context, url string) (*product.Info, error)
}

// Handler serves the creative endpoints.
type Handler struct {
	cfg       config.Config
	products  ProductSource
	analyzer  analysis.Provider
	generator *creative.Generator
	motion    *motion.Simulator
	client    *http.Client
}

func NewHandler(cfg config.Config, products ProductSource, analyzer analysis.Provider, gen *creative.Generator, sim *motion.Simulator) *Handler {
	if analyzer == nil {
		analyzer = analysis.Heuristic{}
	}
	if sim == nil {
		sim = motion.New()
	}
	return &Handler{
		cfg:       cfg,
		products:  products,
		analyzer:  analyzer,
		generator: gen,
		motion:    sim,
		client:    util.NewClient(cfg.FetchTimeout),
	}
}

func root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AI Ad Creative Generator API", "version": "1.0.0", "status": "operational"})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type productView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
}

type adResponse struct {
	Status              string       `json:"status"`
	Category            string       `json:"category"`
	CategoryDescription string       `json:"category_description"`
	ProductInfo         productView  `json:"product_info"`
	AdSizes             creative.Set `json:"ad_sizes"`
	AdImages            []string     `json:"ad_images"`
	Keywords            []string     `json:"keywords"`
	SuggestedCaptions   []string     `json:"suggested_captions"`
	PrimaryCTA          string       `json:"primary_cta"`
	ProductQR           string       `json:"product_qr,omitempty"`
}

func (h *Handler) generateAdFromURL(c *gin.Context) {
	var req struct {
		ProductURL string `json:"product_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	u, err := url.Parse(strings.TrimSpace(req.ProductURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fail(c, http.StatusUnprocessableEntity, "product_url must be an http or https URL")
		return
	}
	ctx := c.Request.Context()

	info, err := h.products.Scrape(ctx, u.String())
	if err != nil || info == nil {
		log.Warn().Err(err).Str("url", u.String()).Msg("scrape failed")
		fail(c, http.StatusBadRequest, "Could not extract product information from URL")
		return
	}

	style := h.classifyProductImage(ctx, info.ImageURL)
	copyText, err := h.analyzer.AnalyzeProduct(ctx, *info)
	if err != nil {
		log.Warn().Err(err).Msg("product analysis failed, using defaults")
		copyText = analysis.DefaultProductAnalysis(*info)
	}

	set := h.generator.Generate(ctx, *info, copyText, style.Category)

	qr, err := imagepkg.ProductQR(u.String(), 256)
	if err != nil {
		log.Warn().Err(err).Msg("product QR unavailable")
	}

	c.JSON(http.StatusOK, adResponse{
		Status:              "success",
		Category:            style.Category,
		CategoryDescription: style.CategoryDescription,
		ProductInfo: productView{
			Title:       info.Title,
			Description: info.Description,
			Price:       info.Price,
			ImageURL:    info.ImageURL,
		},
		AdSizes:           set,
		AdImages:          []string{},
		Keywords:          orEmpty(copyText.Keywords),
		SuggestedCaptions: orEmpty(copyText.Captions),
		PrimaryCTA:        copyText.CTA(),
		ProductQR:         qr,
	})
}

// classifyProductImage downloads the product image and asks for its style.
// Any failure keeps the default classification.
func (h *Handler) classifyProductImage(ctx context.Context, imageURL string) product.ImageAnalysis {
	style := product.ImageAnalysis{Category: imagepkg.CategoryRealistic, CategoryDescription: analysis.DefaultCategoryDescription}
	if imageURL == "" {
		return style
	}
	fctx, cancel := context.WithTimeout(ctx, h.cfg.FetchTimeout)
	defer cancel()
	data, err := util.GetBytes(fctx, h.client, imageURL, h.cfg.MaxUploadBytes())
	if err != nil {
		log.Warn().Err(err).Str("url", imageURL).Msg("product image unavailable for analysis")
		return style
	}
	a, err := h.analyzer.AnalyzeImage(ctx, data, http.DetectContentType(data))
	if err != nil {
		log.Warn().Err(err).Msg("image analysis failed")
		return style
	}
	return analysis.NormalizeImageAnalysis(a)
}

func (h *Handler) generateMotionEffect(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "File must be an image")
		return
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		fail(c, http.StatusBadRequest, "File must be an image")
		return
	}
	if fh.Size > h.cfg.MaxUploadBytes() {
		fail(c, http.StatusRequestEntityTooLarge, "image exceeds upload limit")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxUploadBytes()+1))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		fail(c, http.StatusBadRequest, "image is empty")
		return
	}

	ctx := c.Request.Context()
	a, err := h.analyzer.AnalyzeImage(ctx, data, fh.Header.Get("Content-Type"))
	if err != nil {
		log.Warn().Err(err).Msg("image analysis failed, using defaults")
		a = analysis.DefaultImageAnalysis()
	}
	a = analysis.NormalizeImageAnalysis(a)

	res, err := h.motion.Apply(data, a)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "success",
		"motion_effect_url": res.URL,
		"analysis":          a.Description,
		"category":          a.Category,
		"keywords":          orEmpty(a.Keywords),
		"download_url":      res.DownloadURL,
		"tier":              res.Tier,
	})
}

func (h *Handler) generateCreatives(c *gin.Context) {
	var req struct {
		ProductInfo product.Info      `json:"product_info"`
		Analysis    *product.Analysis `json:"analysis"`
		Category    string            `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	var a product.Analysis
	if req.Analysis != nil {
		a = *req.Analysis
	}
	set := h.generator.Generate(c.Request.Context(), req.ProductInfo, a, req.Category)
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"ad_sizes":    set,
		"keywords":    orEmpty(a.Keywords),
		"primary_cta": a.CTA(),
		"manifest":    creative.ExportManifest(req.ProductInfo.DisplayTitle(), set),
	})
}

// qrHandler returns a PNG of a QR code for the "text" query parameter.
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		fail(c, http.StatusBadRequest, "text is required")
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = min(max(v, 64), 2048)
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, imagepkg.ErrEncode) {
			status = http.StatusBadRequest
		}
		fail(c, status, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
