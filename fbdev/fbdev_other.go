//go:build !linux

package fbdev

import (
	"errors"

	"github.com/BeatGlow/blit"
)

// ErrNotSupported is returned on platforms without framebuffer devices.
var ErrNotSupported = errors.New("fbdev: not supported")

// Open is not supported on this platform.
func Open(string) (blit.Conn, error) {
	return nil, ErrNotSupported
}
