// Package draw renders shapes, test patterns and text onto any
// [image/draw.Image], such as a pixel frame bound for a Presenter.
package draw

import (
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image
