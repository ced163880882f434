package imagepkg

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 400
	MaxQRSize     = 2048
)

var ErrEmptyQRText = errors.New("qr text must not be empty")

// GenerateQRPNG returns PNG bytes of a QR code for text. size is clamped to
// (0, MaxQRSize]; non-positive sizes get DefaultQRSize.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyQRText
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	if size > MaxQRSize {
		size = MaxQRSize
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}
