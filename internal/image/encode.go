package imagepkg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// DataURIPrefix starts every creative URL.
const DataURIPrefix = "data:image/png;base64,"

// EncodePNG serialises img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncode)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrEncode)
	}
	return buf.Bytes(), nil
}

// EncodeDataURI encodes img as a base64 PNG data URI.
func EncodeDataURI(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return WrapDataURI(b), nil
}

// WrapDataURI labels raw bytes as PNG regardless of their real format.
func WrapDataURI(b []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(b)
}

// DataURIBytes extracts the payload of a data URI produced by this package.
func DataURIBytes(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: not a PNG data URI", ErrDecode)
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}

// DecodeDataURI decodes a data URI back to an image.
func DecodeDataURI(uri string) (image.Image, error) {
	b, err := DataURIBytes(uri)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b)
}
