// Package fbdev presents to a Linux framebuffer device.
//
// The device is opened by path, typically /dev/fb0, and must expose a packed
// 32 bits per pixel XRGB layout; other layouts are rejected at open. The
// mapping is the screen memory itself, so there is no shared memory
// transport to negotiate: every present copies straight into the mapping.
package fbdev
