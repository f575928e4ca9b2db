package creative

import (
	"fmt"
	"strings"

	imagepkg "github.com/youruser/adforge/internal/image"
)

// FileName is the PNG name used when a creative is written to disk.
func FileName(c Creative) string {
	return c.Platform + ".png"
}

// ExportManifest lists the creatives of a set, one per line, in order.
func ExportManifest(title string, s Set) string {
	lines := []string{}
	if title != "" {
		lines = append(lines, "# "+title)
	}
	for _, c := range s.items {
		label := c.Platform
		if p, ok := ProfileByID(c.Platform); ok {
			label = p.Label
		}
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%d", FileName(c), label, c.Size, c.Ratio, c.Source, payloadBytes(c.URL)))
	}
	return strings.Join(lines, "\n") + "\n"
}

func payloadBytes(uri string) int {
	b, err := imagepkg.DataURIBytes(uri)
	if err != nil {
		return 0
	}
	return len(b)
}
