package draw

import (
	"image"
	"image/color"

	"github.com/BeatGlow/blit/pixel"
)

// Gradient fills the rectangle with the reference ramp: red rises along x,
// green along y, blue along the diagonal.
func Gradient(dst Image, rect image.Rectangle) {
	w, h := rect.Dx(), rect.Dy()
	if w < 1 || h < 1 {
		return
	}

	xmax, ymax := w-1, h-1
	if xmax == 0 {
		xmax = 1
	}
	if ymax == 0 {
		ymax = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(rect.Min.X+x, rect.Min.Y+y, pixel.RGB(
				uint8(255*x/xmax),
				uint8(255*y/ymax),
				uint8(255*(x+y)/(xmax+ymax)),
			))
		}
	}
}

// Checkerboard fills the rectangle with size×size cells alternating between
// two colors.
func Checkerboard(dst Image, rect image.Rectangle, size int, a, b color.Color) {
	if size < 1 {
		size = 1
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 == 0 {
				dst.Set(x, y, a)
			} else {
				dst.Set(x, y, b)
			}
		}
	}
}
