// Package scraper pulls product details out of storefront pages.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/youruser/adforge/internal/product"
	"github.com/youruser/adforge/internal/util"
)

// ErrNoProduct means the page was fetched but held no usable title.
var ErrNoProduct = errors.New("no product information found")

const maxPageBytes = 8 << 20

type Scraper struct {
	client  *http.Client
	timeout time.Duration
	cache   *cache.Cache
}

// New returns a scraper. A zero ttl disables caching.
func New(timeout, ttl time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &Scraper{client: util.NewClient(timeout), timeout: timeout}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Scrape fetches rawURL and extracts product fields. Successful results are
// cached per URL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*product.Info, error) {
	base, err := url.Parse(rawURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid product url %q", rawURL)
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(rawURL); ok {
			info := v.(product.Info)
			log.Debug().Str("url", rawURL).Msg("scrape cache hit")
			return &info, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	body, err := util.GetBytes(ctx, s.client, rawURL, maxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch product page: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse product page: %w", err)
	}
	info := Extract(doc, base)
	if info == nil {
		return nil, ErrNoProduct
	}
	if s.cache != nil {
		s.cache.SetDefault(rawURL, *info)
	}
	log.Info().Str("url", rawURL).Str("title", info.Title).Str("price", info.Price).Msg("product scraped")
	return info, nil
}
