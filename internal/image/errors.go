package imagepkg

import "errors"

// Failure classes of the creative pipeline. Every one of them is absorbed at
// the stage where it happens and replaced by a simpler output.
var (
	ErrFetch  = errors.New("fetch failed")
	ErrDecode = errors.New("decode failed")
	ErrRender = errors.New("render failed")
	ErrEncode = errors.New("encode failed")
)
