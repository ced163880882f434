package imagepkg

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/youruser/cardgen/internal/util"
)

// DownloadImage fetches url and decodes it. Data URLs are decoded in place.
func DownloadImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	if strings.HasPrefix(url, "data:") {
		return DecodeImage([]byte(url))
	}
	body, err := util.GetBytes(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	return DecodeImage(body)
}

// Downloader fetches generated images over HTTP.
type Downloader struct {
	Client *http.Client
}

func (d Downloader) Fetch(ctx context.Context, url string) (image.Image, error) {
	return DownloadImage(ctx, d.Client, url)
}
