package imagepkg

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/youruser/cardgen/internal/cards"
)

var outlineColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Render draws c onto a fresh CardWidth×CardHeight canvas. src may be nil.
// Long text is not wrapped or truncated.
func Render(c cards.Card, src image.Image) image.Image {
	return Draw(Layout(c), src)
}

// Draw executes a precomputed layout.
func Draw(l CardLayout, src image.Image) image.Image {
	dc := gg.NewContext(l.Width, l.Height)

	composeBackground(dc, l, src)

	inset := l.BorderInset
	dc.SetColor(l.BorderColor)
	dc.SetLineWidth(l.BorderWidth)
	dc.DrawRectangle(inset, inset, float64(l.Width)-2*inset, float64(l.Height)-2*inset)
	dc.Stroke()

	composeHeader(dc, l)

	drawText(dc, l.Name)
	drawText(dc, l.HP)
	drawCircle(dc, l.TypeBadge)

	for _, row := range l.Attacks {
		drawCircle(dc, row.Badge)
		drawText(dc, row.Name)
		if row.Damage != nil {
			drawText(dc, *row.Damage)
		}
		drawText(dc, row.Description)
	}

	drawText(dc, l.Flavor)
	drawText(dc, l.Rarity)

	return dc.Image()
}

// Export renders c and writes it as a JPEG.
func Export(w io.Writer, c cards.Card, src image.Image) error {
	return EncodeJPEG(w, Render(c, src))
}

func anchor(t Text) (ax, ay float64) {
	switch t.Align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	if t.Middle {
		ay = 0.5
	}
	return ax, ay
}

func drawText(dc *gg.Context, t Text) {
	if t.Value == "" {
		return
	}
	face := faceFor(t.Style, t.Size)
	dc.SetFontFace(face)
	ax, ay := anchor(t)

	if t.Outline {
		// canvas-style strokeText: smear the glyphs in white around the
		// anchor, then fill on top
		r := math.Max(2, math.Round(t.Size/10))
		dc.SetColor(outlineColor)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if (dx == 0 && dy == 0) || dx*dx+dy*dy > r*r {
					continue
				}
				dc.DrawStringAnchored(t.Value, t.X+dx, t.Y+dy, ax, ay)
			}
		}
	}
	dc.SetColor(t.Color)
	dc.DrawStringAnchored(t.Value, t.X, t.Y, ax, ay)
}

func drawCircle(dc *gg.Context, c Circle) {
	dc.DrawCircle(c.X, c.Y, c.R)
	dc.SetColor(c.Fill)
	dc.Fill()
	drawText(dc, c.Label)
}
