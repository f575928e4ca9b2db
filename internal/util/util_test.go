package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("hello"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), srv.Client(), srv.URL+"/ok", 0)
	if err != nil || string(b) != "hello" {
		t.Fatalf("GetBytes = %q, %v", b, err)
	}
	if _, err := GetBytes(context.Background(), srv.Client(), srv.URL+"/missing", 0); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := GetBytes(context.Background(), srv.Client(), srv.URL+"/ok", 3); err == nil {
		t.Fatal("expected error when body exceeds limit")
	}
}

func TestSafeFileName(t *testing.T) {
	cases := map[string]string{
		"Wireless Earbuds!": "Wireless_Earbuds",
		"   ":               "item",
		"a/b\\c":            "a_b_c",
	}
	for in, want := range cases {
		if got := SafeFileName(in); got != want {
			t.Errorf("SafeFileName(%q) = %q, want %q", in, got, want)
		}
	}
	if got := SafeFileName(strings.Repeat("x", 100)); len(got) != 64 {
		t.Errorf("long name not truncated: %d", len(got))
	}
}

func TestWriteFileCreatesDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := WriteFile(p, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if b, err := os.ReadFile(p); err != nil || string(b) != "x" {
		t.Fatalf("read back %q, %v", b, err)
	}
}
