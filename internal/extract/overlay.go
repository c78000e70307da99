package extract

import (
	"image"
	"image/color"

	"box-net-renderer/internal/colorutil"
	"box-net-renderer/internal/netmap"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayFillAlpha = 0x20
	labelHeight      = 18
)

var fallbackRegionColor = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

// Overlay draws every region of m over a copy of the sheet: a translucent
// fill, a border and a label tab above the top-left corner. The selected
// region gets a thicker white border.
func Overlay(s Sheet, m netmap.Map, selected string) *image.NRGBA {
	bounds := image.Rect(0, 0, s.Width(), s.Height())
	canvas := s.Copy(bounds)

	fnt := basicfont.Face7x13
	for _, key := range netmap.Keys(m) {
		r := m[key]
		c, err := colorutil.Parse(r.Color)
		if err != nil {
			c = fallbackRegionColor
		}
		rect := netmap.ResolvePixels(r, s.Width(), s.Height()).Rect()

		draw.Draw(canvas, rect.Intersect(bounds), image.NewUniform(colorutil.WithAlpha(c, overlayFillAlpha)), image.Point{}, draw.Over)

		border, width := c, 2
		if key == selected {
			border, width = colorutil.White, 3
		}
		strokeRect(canvas, rect, width, border)

		label := r.Label
		if label == "" {
			label = key
		}
		tabW := font.MeasureString(fnt, label).Ceil() + 12
		tab := image.Rect(rect.Min.X, rect.Min.Y-labelHeight-2, rect.Min.X+tabW, rect.Min.Y-2)
		draw.Draw(canvas, tab.Intersect(bounds), image.NewUniform(c), image.Point{}, draw.Src)

		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(colorutil.Black),
			Face: fnt,
			Dot:  fixed.P(tab.Min.X+4, tab.Max.Y-5),
		}
		d.DrawString(label)
	}
	return canvas
}

func strokeRect(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	src := image.NewUniform(c)
	b := dst.Bounds()
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(b), src, image.Point{}, draw.Src)
	}
}
