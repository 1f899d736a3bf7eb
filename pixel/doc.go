// Package pixel implements packed 32-bit pixel frames as consumed by windowing
// system visuals.
//
// It provides the XRGB color model used by 24- and 32-bit TrueColor visuals,
// compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, and the byte-order aware serialization used by the presentation
// transports.
package pixel
