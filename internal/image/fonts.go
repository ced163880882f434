package imagepkg

import (
	"log/slog"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle selects one of the embedded Go fonts.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
	Italic
)

var (
	fontsOnce sync.Once
	fonts     map[FontStyle]*truetype.Font
)

func loadFonts() {
	fonts = make(map[FontStyle]*truetype.Font, 3)
	for style, ttf := range map[FontStyle][]byte{
		Regular: goregular.TTF,
		Bold:    gobold.TTF,
		Italic:  goitalic.TTF,
	} {
		f, err := truetype.Parse(ttf)
		if err != nil {
			slog.Error("parse embedded font", "style", style, "error", err)
			continue
		}
		fonts[style] = f
	}
}

// faceFor returns a face of the given style and pixel size. It degrades to
// the fixed 7x13 bitmap face if the embedded font could not be parsed.
func faceFor(style FontStyle, size float64) font.Face {
	fontsOnce.Do(loadFonts)
	f, ok := fonts[style]
	if !ok {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}
