package imagepkg

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// JPEGQuality matches the 0.9 quality of the browser export.
const JPEGQuality = 90

var (
	ErrDecode     = errors.New("cannot decode image")
	ErrEmptyImage = errors.New("empty image data")
	ErrBadDataURL = errors.New("malformed data URL")
)

// EncodeJPEG writes img as a JPEG at JPEGQuality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// DecodeImage decodes raw image bytes or a base64 "data:" URL, as produced by
// a browser FileReader.
func DecodeImage(data []byte) (image.Image, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyImage
	}
	if bytes.HasPrefix(data, []byte("data:")) {
		raw, err := decodeDataURL(string(data))
		if err != nil {
			return nil, err
		}
		data = raw
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// decodeDataURL accepts "data:[<mime>][;base64],<payload>".
func decodeDataURL(s string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, ErrBadDataURL
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: only base64 payloads are supported", ErrBadDataURL)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDataURL, err)
	}
	return raw, nil
}
