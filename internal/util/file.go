package util

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SafeFileName turns an arbitrary label into something usable as a file name.
func SafeFileName(s string) string {
	s = strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(s), "_"), "_.")
	if s == "" {
		return "item"
	}
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}

// WriteFile creates the parent directory and writes data.
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
