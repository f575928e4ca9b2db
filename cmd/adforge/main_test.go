package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/youruser/adforge/internal/product"
)

func TestRenderRequestWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	req := product.Request{
		Info:     product.Info{Title: "Desk Lamp"},
		Analysis: product.Analysis{Keywords: []string{"bright"}},
		Category: "Artist",
	}
	if err := renderRequest(cmd, newGenerator(), req, dir); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"facebook.png", "twitter.png", "tiktok.png"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(b), "\x89PNG") {
			t.Errorf("%s is not a PNG", name)
		}
	}
	manifest, err := os.ReadFile(filepath.Join(dir, "manifest.txt"))
	if err != nil || !strings.HasPrefix(string(manifest), "# Desk Lamp\n") {
		t.Errorf("manifest = %q, %v", manifest, err)
	}
}
