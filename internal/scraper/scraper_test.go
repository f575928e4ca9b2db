package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/net/html"
)

const productPage = `<!doctype html>
<html><head>
<title>Shop | Earbuds</title>
<meta name="description" content="True wireless earbuds with 30h battery.">
<meta property="og:image" content="/images/earbuds.jpg">
<script>var price = "$1.00";</script>
</head><body>
<nav class="breadcrumb">Home > Audio > Earbuds</nav>
<h1 class="product-title main">  Wireless Earbuds  </h1>
<span class="price-now">$59.99</span>
</body></html>`

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtract(t *testing.T) {
	base, _ := url.Parse("https://shop.example.com/p/earbuds")
	info := Extract(parse(t, productPage), base)
	if info == nil {
		t.Fatal("Extract returned nil")
	}
	if info.Title != "Wireless Earbuds" {
		t.Errorf("title = %q", info.Title)
	}
	if info.Description != "True wireless earbuds with 30h battery." {
		t.Errorf("description = %q", info.Description)
	}
	if info.Price != "$59.99" {
		t.Errorf("price = %q, script text must be ignored", info.Price)
	}
	if info.ImageURL != "https://shop.example.com/images/earbuds.jpg" {
		t.Errorf("image = %q", info.ImageURL)
	}
	if info.Department != "Earbuds" {
		t.Errorf("department = %q", info.Department)
	}
}

func TestExtractFallbacks(t *testing.T) {
	page := `<html><head><meta property="og:title" content="Desk Lamp">
<meta property="product:price:amount" content="24"></head>
<body><img class="main-photo" data-src="lamp.png"><div class="long-description">short</div></body></html>`
	base, _ := url.Parse("https://shop.example.com/lamps/")
	info := Extract(parse(t, page), base)
	if info == nil || info.Title != "Desk Lamp" {
		t.Fatalf("info = %+v", info)
	}
	if info.Price != "$24" || info.Description != "" {
		t.Errorf("price/description = %q / %q", info.Price, info.Description)
	}
	if info.ImageURL != "https://shop.example.com/lamps/lamp.png" || info.Department != "General" {
		t.Errorf("image/department = %q / %q", info.ImageURL, info.Department)
	}
}

func TestExtractNoTitle(t *testing.T) {
	if info := Extract(parse(t, `<html><body><p>nothing</p></body></html>`), nil); info != nil {
		t.Errorf("expected nil, got %+v", info)
	}
}

func TestScrapeCachesResults(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/empty" {
			w.Write([]byte("<html></html>"))
			return
		}
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute)
	for i := 0; i < 2; i++ {
		info, err := s.Scrape(context.Background(), srv.URL+"/p/1")
		if err != nil || info.Title != "Wireless Earbuds" {
			t.Fatalf("Scrape = %+v, %v", info, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := s.Scrape(context.Background(), srv.URL+"/empty"); !errors.Is(err, ErrNoProduct) {
		t.Errorf("empty page err = %v", err)
	}
	if _, err := s.Scrape(context.Background(), "ftp://example.com/x"); err == nil {
		t.Error("expected error for non-http url")
	}
}

func TestExtractSelectorCascade(t *testing.T) {
	page := `<html><head><title>Store</title></head><body>
<h1 class="page-title">Spring sale</h1>
<h1 class="hero product-title">Ceramic Mug</h1>
<div class="product-description">Hand-thrown stoneware mug, dishwasher safe.</div>
<img alt="product shot" src="/mug.jpg">
<div id="main-price">12 credits</div>
</body></html>`
	base, _ := url.Parse("https://shop.example.com/mugs/1")
	info := Extract(parse(t, page), base)
	if info == nil {
		t.Fatal("Extract returned nil")
	}
	if info.Title != "Ceramic Mug" {
		t.Errorf("title = %q, want the product-title heading", info.Title)
	}
	if info.Description != "Hand-thrown stoneware mug, dishwasher safe." {
		t.Errorf("description = %q", info.Description)
	}
	if info.ImageURL != "https://shop.example.com/mug.jpg" {
		t.Errorf("image = %q", info.ImageURL)
	}
	if info.Price != "12 credits" {
		t.Errorf("price = %q", info.Price)
	}
}
