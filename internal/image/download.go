package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/adforge/internal/util"
)

// Fetcher retrieves and decodes a remote image.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcher downloads images over HTTP.
type HTTPFetcher struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher with a per-request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{Client: util.NewClient(timeout), Timeout: timeout, MaxBytes: 25 << 20}
}

// Fetch downloads url and decodes it. Transport and status failures wrap
// ErrFetch, undecodable bodies wrap ErrDecode.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := util.GetBytes(ctx, f.Client, url, f.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return DecodeBytes(body)
}

// DecodeBytes decodes any registered format, honouring EXIF orientation.
func DecodeBytes(b []byte) (image.Image, error) {
	return decode(b, imaging.AutoOrientation(true))
}

// DecodeStored decodes pixels as stored and ignores EXIF orientation, so the
// result always has the encoded width and height.
func DecodeStored(b []byte) (image.Image, error) {
	return decode(b)
}

func decode(b []byte, opts ...imaging.DecodeOption) (image.Image, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	img, err := imaging.Decode(bytes.NewReader(b), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: zero-sized image", ErrDecode)
	}
	return img, nil
}
