package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/youruser/adforge/internal/analysis"
	"github.com/youruser/adforge/internal/config"
	"github.com/youruser/adforge/internal/creative"
	imagepkg "github.com/youruser/adforge/internal/image"
	"github.com/youruser/adforge/internal/product"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubSource struct {
	info *product.Info
	err  error
}

func (s stubSource) Scrape(context.Context, string) (*product.Info, error) { return s.info, s.err }

func testConfig() config.Config {
	return config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		FetchTimeout:   2 * time.Second,
		MaxConcurrent:  3,
		MaxUploadMB:    5,
	}
}

func newTestRouter(src ProductSource) *gin.Engine {
	cfg := testConfig()
	gen := creative.NewGenerator(imagepkg.NewCompositor(imagepkg.NewHTTPFetcher(cfg.FetchTimeout), nil))
	return NewRouter(cfg, NewHandler(cfg, src, analysis.Heuristic{}, gen, nil))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.New(w, h, color.NRGBA{R: 30, G: 120, B: 200, A: 255})); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	r := newTestRouter(stubSource{})
	for _, path := range []string{"/health", "/api/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
			t.Errorf("%s: %d %s", path, w.Code, w.Body.String())
		}
		if w.Header().Get(requestIDHeader) == "" {
			t.Errorf("%s: missing request id", path)
		}
	}
}

func TestGenerateAdFromURL(t *testing.T) {
	img := pngBytes(t, 400, 300)
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer imgSrv.Close()

	r := newTestRouter(stubSource{info: &product.Info{
		Title:    "Wireless Earbuds",
		Price:    "$59.99",
		ImageURL: imgSrv.URL + "/earbuds.png",
	}})
	body := strings.NewReader(`{"product_url":"https://shop.example.com/p/earbuds"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-ad-from-url", body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	raw := w.Body.String()
	if !(strings.Index(raw, `"facebook"`) < strings.Index(raw, `"twitter"`) && strings.Index(raw, `"twitter"`) < strings.Index(raw, `"tiktok"`)) {
		t.Error("ad_sizes not in platform order")
	}

	var resp struct {
		Status      string                       `json:"status"`
		Category    string                       `json:"category"`
		ProductInfo map[string]string            `json:"product_info"`
		AdSizes     map[string]creative.Creative `json:"ad_sizes"`
		AdImages    []string                     `json:"ad_images"`
		Keywords    []string                     `json:"keywords"`
		Captions    []string                     `json:"suggested_captions"`
		PrimaryCTA  string                       `json:"primary_cta"`
		ProductQR   string                       `json:"product_qr"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" || resp.Category != imagepkg.CategoryRealistic || resp.PrimaryCTA != "Shop Now" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.ProductInfo["title"] != "Wireless Earbuds" || resp.AdImages == nil || len(resp.Captions) != 3 {
		t.Errorf("product/captions = %+v %v", resp.ProductInfo, resp.Captions)
	}
	if len(resp.AdSizes) != 3 {
		t.Fatalf("ad_sizes = %d entries", len(resp.AdSizes))
	}
	for id, c := range resp.AdSizes {
		if !strings.HasPrefix(c.URL, imagepkg.DataURIPrefix) || c.Source != imagepkg.SourcePhoto {
			t.Errorf("%s: source %q", id, c.Source)
		}
	}
	if resp.AdSizes["twitter"].Size != "1200×675" || resp.AdSizes["tiktok"].Ratio != "9:16" {
		t.Errorf("metadata = %+v", resp.AdSizes)
	}
	if !strings.HasPrefix(resp.ProductQR, imagepkg.DataURIPrefix) {
		t.Error("product_qr missing")
	}
}

func TestGenerateAdFromURLErrors(t *testing.T) {
	r := newTestRouter(stubSource{err: errors.New("boom")})
	cases := map[string]int{
		`{"product_url":"https://shop.example.com/x"}`: http.StatusBadRequest,
		`{"product_url":"not a url"}`:                  http.StatusUnprocessableEntity,
		`{}`:                                           http.StatusUnprocessableEntity,
	}
	for body, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-ad-from-url", strings.NewReader(body)))
		if w.Code != want {
			t.Errorf("%s: status = %d, want %d", body, w.Code, want)
		}
	}
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="upload.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestGenerateMotionEffect(t *testing.T) {
	r := newTestRouter(stubSource{})

	body, ct := multipartImage(t, "image/png", pngBytes(t, 32, 32))
	req := httptest.NewRequest(http.MethodPost, "/api/generate-motion-effect", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["motion_effect_url"] != resp["download_url"] || resp["category"] != imagepkg.CategoryRealistic || resp["tier"] != "full" {
		t.Errorf("resp = %v", resp)
	}

	body, ct = multipartImage(t, "text/plain", []byte("hello"))
	req = httptest.NewRequest(http.MethodPost, "/api/generate-motion-effect", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-image upload status = %d", w.Code)
	}

	body, ct = multipartImage(t, "image/png", nil)
	req = httptest.NewRequest(http.MethodPost, "/api/generate-motion-effect", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty upload status = %d", w.Code)
	}
}

func TestGenerateCreatives(t *testing.T) {
	r := newTestRouter(stubSource{})
	body := `{"product_info":{"title":"Lamp"},"analysis":{"keywords":["bright"],"primary_cta":"Buy"},"category":"Sticker"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/creatives", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		AdSizes    map[string]creative.Creative `json:"ad_sizes"`
		PrimaryCTA string                       `json:"primary_cta"`
		Manifest   string                       `json:"manifest"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.AdSizes) != 3 || resp.PrimaryCTA != "Buy" || !strings.HasPrefix(resp.Manifest, "# Lamp\n") {
		t.Errorf("resp = %+v", resp)
	}
	if resp.AdSizes["facebook"].Source != imagepkg.SourceGradient {
		t.Errorf("source = %q", resp.AdSizes["facebook"].Source)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(stubSource{})
	req := httptest.NewRequest(http.MethodOptions, "/api/generate-ad-from-url", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" || w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("headers = %v", w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin was allowed")
	}
}

func TestQR(t *testing.T) {
	r := newTestRouter(stubSource{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qr?text=hello&size=128", nil))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("status = %d, type %q", w.Code, w.Header().Get("Content-Type"))
	}
	img, err := png.Decode(w.Body)
	if err != nil || img.Bounds().Dx() != 128 {
		t.Errorf("qr image: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qr", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing text status = %d", w.Code)
	}
}
