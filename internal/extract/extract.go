// Package extract crops face images out of a rasterized box-net sheet.
package extract

import (
	"image"

	"box-net-renderer/internal/face"
	"box-net-renderer/internal/logx"
	"box-net-renderer/internal/netmap"

	"golang.org/x/image/draw"
)

// Sheet is a rasterized source page. Implementations are immutable.
type Sheet interface {
	Width() int
	Height() int
	// Copy returns a new image holding r, which lies within the sheet.
	Copy(r image.Rectangle) *image.NRGBA
}

// ImageSheet adapts an image.Image to Sheet.
type ImageSheet struct {
	img *image.NRGBA
}

// NewImageSheet converts img once to origin-based NRGBA.
func NewImageSheet(img image.Image) *ImageSheet {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return &ImageSheet{img: n}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return &ImageSheet{img: dst}
}

func (s *ImageSheet) Width() int  { return s.img.Rect.Dx() }
func (s *ImageSheet) Height() int { return s.img.Rect.Dy() }

// Image returns the underlying pixels. Callers must not modify them.
func (s *ImageSheet) Image() *image.NRGBA { return s.img }

// Copy copies r row by row into a new origin-based image.
func (s *ImageSheet) Copy(r image.Rectangle) *image.NRGBA {
	w, h := r.Dx(), r.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcOff := s.img.PixOffset(r.Min.X, r.Min.Y+y)
		dstOff := y * dst.Stride
		copy(dst.Pix[dstOff:dstOff+w*4], s.img.Pix[srcOff:srcOff+w*4])
	}
	return dst
}

// Clamp resolves r against the sheet and clips it to the sheet bounds.
// The result may be empty.
func Clamp(s Sheet, r netmap.Region) image.Rectangle {
	px := netmap.ResolvePixels(r, s.Width(), s.Height())
	if px.W <= 0 || px.H <= 0 {
		return image.Rectangle{}
	}
	return px.Rect().Intersect(image.Rect(0, 0, s.Width(), s.Height()))
}

// Extract crops r out of the sheet. Regions partly off the sheet are
// clamped; a region with no pixels on the sheet yields a 0×0 image.
func Extract(s Sheet, r netmap.Region) *image.NRGBA {
	px := netmap.ResolvePixels(r, s.Width(), s.Height())
	rect := Clamp(s, r)
	if rect != px.Rect() {
		logx.Logger().Debug("extract: region clamped",
			"requested", px.Rect().String(), "clamped", rect.String())
	}
	if rect.Empty() {
		return image.NewNRGBA(image.Rectangle{})
	}
	return s.Copy(rect)
}

// ExtractAll crops every face region in canonical face order. A face whose
// key is absent from m gets a nil slot, meaning "use the flat color".
func ExtractAll(s Sheet, m netmap.Map) [face.Count]*image.NRGBA {
	var out [face.Count]*image.NRGBA
	for _, f := range face.All {
		r, ok := m[f.Key()]
		if !ok {
			continue
		}
		out[f] = Extract(s, r)
	}
	return out
}

// FaceImages converts ExtractAll output for material resolution. Nil slots
// and 0×0 crops become nil interfaces, never typed nils.
func FaceImages(imgs [face.Count]*image.NRGBA) [face.Count]image.Image {
	var out [face.Count]image.Image
	for i, img := range imgs {
		if img == nil || img.Rect.Empty() {
			continue
		}
		out[i] = img
	}
	return out
}
