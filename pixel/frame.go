package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

// Frame is an in-memory image of packed 32-bit pixels, one uint32 per pixel,
// in the layout a TrueColor visual reads them.
type Frame struct {
	// Rect is the frame bounding box.
	Rect image.Rectangle

	// Pix are the packed pixel values. The pixel at (x, y) is
	// Pix[(y-Rect.Min.Y)*Rect.Dx()+(x-Rect.Min.X)].
	Pix []uint32
}

func NewFrame(w, h int) *Frame {
	return &Frame{
		Rect: image.Rect(0, 0, w, h),
		Pix:  make([]uint32, w*h),
	}
}

func (p *Frame) ColorModel() color.Model {
	return XRGBModel
}

func (p *Frame) Bounds() image.Rectangle {
	return p.Rect
}

// PixOffset returns the index of the pixel at (x, y) in Pix.
func (p *Frame) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Rect.Dx() + (x - p.Rect.Min.X)
}

func (p *Frame) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return XRGB{p.Pix[p.PixOffset(x, y)]}
}

func (p *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = xrgbModel(c).(XRGB).V
}

func (p *Frame) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0
	}
}

func (p *Frame) Fill(c color.Color) {
	value := xrgbModel(c).(XRGB).V
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Pack serializes pixels into dst in the given byte order, 4 bytes per pixel.
// dst must hold at least 4*len(src) bytes.
func Pack(dst []byte, src []uint32, order binary.ByteOrder) {
	for i, v := range src {
		order.PutUint32(dst[i*4:], v)
	}
}

// Interface check.
var _ draw.Image = (*Frame)(nil)
