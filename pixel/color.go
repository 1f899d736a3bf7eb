package pixel

import "image/color"

// XRGBModel is the color model for packed 32-bit RGB colors.
var XRGBModel color.Model = color.ModelFunc(xrgbModel)

var (
	Black = XRGB{0x000000}
	White = XRGB{0xffffff}
)

// XRGB represents a packed 32-bit RGB color as used by 24- and 32-bit depth
// TrueColor visuals.
type XRGB struct {
	// CIgnore, 8, CRed, 8, CGreen, 8, CBlue, 8
	V uint32
}

// RGB packs the three 8-bit channels into an XRGB color.
func RGB(r, g, b uint8) XRGB {
	return XRGB{uint32(r)<<16 | uint32(g)<<8 | uint32(b)}
}

func (c XRGB) RGBA() (r, g, b, a uint32) {
	red := (c.V >> 16) & 0xff
	grn := (c.V >> 8) & 0xff
	blu := c.V & 0xff
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return red, grn, blu, 0xffff
}

func xrgbModel(c color.Color) color.Color {
	if _, ok := c.(XRGB); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return XRGB{(r&0xff00)<<8 | (g & 0xff00) | b>>8}
}
