package creative

import (
	"bytes"
	"encoding/json"
)

// Source values beyond the background sources of imagepkg.
const (
	SourcePlaceholder = "placeholder"
	SourceMinimal     = "minimal"
)

// Creative is one rendered ad image.
type Creative struct {
	Platform string `json:"-"`
	URL      string `json:"url"`
	Size     string `json:"size"`
	Ratio    string `json:"ratio"`
	Source   string `json:"source"`
}

// Set holds one creative per platform in profile order.
type Set struct {
	items []Creative
}

func (s Set) All() []Creative {
	out := make([]Creative, len(s.items))
	copy(out, s.items)
	return out
}

func (s Set) Len() int { return len(s.items) }

func (s Set) Get(platform string) (Creative, bool) {
	for _, c := range s.items {
		if c.Platform == platform {
			return c, true
		}
	}
	return Creative{}, false
}

// MarshalJSON writes a platform-keyed object that keeps profile order.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Platform)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
