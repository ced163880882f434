package imagepkg_test

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

func TestDownloader_Fetch(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(12, 10, color.NRGBA{B: 0xff, A: 0xff})); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/art.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	d := imagepkg.Downloader{Client: srv.Client()}
	img, err := d.Fetch(context.Background(), srv.URL+"/art.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 12 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	if _, err := d.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("expected error for 404")
	}
}
