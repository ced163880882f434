package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// CoverFit scales src to fill w×h while keeping its aspect ratio, cropping the
// overflow around the center.
func CoverFit(src image.Image, w, h int) *image.NRGBA {
	return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
}

// composeBackground paints either the cover-fitted source image or, when
// there is none, the diagonal two-stop gradient.
func composeBackground(dc *gg.Context, l CardLayout, src image.Image) {
	if src != nil {
		dc.DrawImage(CoverFit(src, l.Width, l.Height), 0, 0)
		return
	}
	g := gg.NewLinearGradient(0, 0, float64(l.Width), float64(l.Height))
	g.AddColorStop(0, l.GradientStart)
	g.AddColorStop(1, l.GradientEnd)
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, float64(l.Width), float64(l.Height))
	dc.Fill()
}

// composeHeader paints the header band, fading from opaque on the left to
// translucent on the right so header text stays legible over a photo.
func composeHeader(dc *gg.Context, l CardLayout) {
	g := gg.NewLinearGradient(0, 0, float64(l.Width), 0)
	g.AddColorStop(0, l.HeaderOpaque)
	g.AddColorStop(1, l.HeaderFadeTo)
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, float64(l.Width), l.HeaderHeight)
	dc.Fill()
}
