package fbdev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/BeatGlow/blit"
	"github.com/BeatGlow/blit/internal/ioctl"
)

// From <linux/fb.h>
const (
	fbioGetVScreenInfo = ioctl.Command(0x4600)
	fbioGetFScreenInfo = ioctl.Command(0x4602)
	fbioBlank          = ioctl.Command(0x4611)

	fbBlankUnblank = 0
)

// Errors
var (
	ErrImage        = errors.New("fbdev: image was not created by this connection")
	ErrSharedMemory = errors.New("fbdev: shared memory images are not supported")
)

type frameBuffer struct {
	f      *os.File
	mem    []byte
	width  uint16
	height uint16
	stride int
	xoff   int
	yoff   int
}

// Open maps the named framebuffer device, typically /dev/fb[0..x]. An empty
// name opens /dev/fb0.
func Open(device string) (blit.Conn, error) {
	if device == "" {
		device = "/dev/fb0"
	}

	f, err := os.OpenFile(device, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, fmt.Errorf("fbdev: open: %w", err)
	}

	var (
		fix fixScreenInfo
		v   varScreenInfo
	)
	if err = ioctl.Do(f.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&fix)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fbdev: %s: %w", device, err)
	}
	if err = ioctl.Do(f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&v)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fbdev: %s: %w", device, err)
	}
	if err = checkLayout(&v); err != nil {
		_ = f.Close()
		return nil, err
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, int(fix.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fbdev: map %s: %w", device, err)
	}

	// Wake the display; consoles blank it after inactivity.
	_ = ioctl.Call(f.Fd(), fbioBlank, fbBlankUnblank)

	return &frameBuffer{
		f:      f,
		mem:    mem,
		width:  uint16(v.Xres),
		height: uint16(v.Yres),
		stride: int(fix.LineLength),
		xoff:   int(v.Xoffset),
		yoff:   int(v.Yoffset),
	}, nil
}

func (fb *frameBuffer) String() string {
	return fmt.Sprintf("framebuffer %s %dx%d", fb.f.Name(), fb.width, fb.height)
}

// Close unmaps the screen memory and closes the device; both are attempted
// even if the first fails.
func (fb *frameBuffer) Close() error {
	err := unix.Munmap(fb.mem)
	if cerr := fb.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// SharedMemory reports false: the mapping already is the screen memory, so
// the direct path writes straight into it.
func (fb *frameBuffer) SharedMemory() bool {
	return false
}

// ByteOrder returns the pixel byte order of the device. The channel offsets
// checkLayout verifies are bit positions within a native-endian word, so
// packed pixels serialize in host order.
func (fb *frameBuffer) ByteOrder() binary.ByteOrder {
	return binary.NativeEndian
}

// Bounds returns the visible resolution of the device.
func (fb *frameBuffer) Bounds() (width, height uint16, err error) {
	return fb.width, fb.height, nil
}

func (fb *frameBuffer) CreateSharedImage(blit.Segment, uint16, uint16) (blit.Image, error) {
	return nil, ErrSharedMemory
}

func (fb *frameBuffer) CreateImage(data []byte, width, height uint16, stride int) (blit.Image, error) {
	return &fbImage{data: data, stride: stride}, nil
}

// Draw copies the image region into the screen memory, clipped to the
// visible resolution. A region entirely off screen is a no-op.
func (fb *frameBuffer) Draw(img blit.Image, x, y int, width, height uint16) error {
	i, ok := img.(*fbImage)
	if !ok {
		return ErrImage
	}

	dstX, dstY, srcX, srcY, w, h := clip(x, y, int(width), int(height), int(fb.width), int(fb.height))
	if w == 0 || h == 0 {
		return nil
	}
	for row := 0; row < h; row++ {
		src := i.data[(srcY+row)*i.stride+srcX*4:]
		dst := fb.mem[(fb.yoff+dstY+row)*fb.stride+(fb.xoff+dstX)*4:]
		copy(dst[:w*4], src[:w*4])
	}
	return nil
}

type fbImage struct {
	data   []byte
	stride int
}

func (i *fbImage) Destroy() error {
	i.data = nil
	return nil
}

// clip intersects a width×height rectangle at (x, y) with a boundsW×boundsH
// screen. It returns the destination origin, the source origin and the
// visible dimensions; zero dimensions mean nothing is visible.
func clip(x, y, width, height, boundsW, boundsH int) (dstX, dstY, srcX, srcY, w, h int) {
	dstX, dstY = x, y
	w, h = width, height
	if dstX < 0 {
		srcX = -dstX
		w += dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY = -dstY
		h += dstY
		dstY = 0
	}
	if dstX+w > boundsW {
		w = boundsW - dstX
	}
	if dstY+h > boundsH {
		h = boundsH - dstY
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return
}

// checkLayout verifies the device exposes packed 32-bit XRGB pixels: blue in
// the low byte, then green, red and a padding byte.
func checkLayout(info *varScreenInfo) error {
	if info.BitsPerPixel != 32 {
		return fmt.Errorf("fbdev: unsupported depth: %d bits per pixel", info.BitsPerPixel)
	}
	if info.Red.Offset != 16 || info.Red.Length != 8 ||
		info.Green.Offset != 8 || info.Green.Length != 8 ||
		info.Blue.Offset != 0 || info.Blue.Length != 8 {
		return fmt.Errorf("fbdev: unsupported pixel layout: red %d/%d green %d/%d blue %d/%d",
			info.Red.Offset, info.Red.Length,
			info.Green.Offset, info.Green.Length,
			info.Blue.Offset, info.Blue.Length)
	}
	return nil
}

// bitField describes one color channel's position in a pixel.
type bitField struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo from <linux/fb.h>.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// fixScreenInfo mirrors struct fb_fix_screeninfo from <linux/fb.h>.
type fixScreenInfo struct {
	ID         [16]byte
	SmemStart  uintptr
	SmemLen    uint32
	Type       uint32
	TypeAux    uint32
	Visual     uint32
	Xpanstep   uint16
	Ypanstep   uint16
	Ywrapstep  uint16
	LineLength uint32
	MmioStart  uintptr
	MmioLen    uint32
	Accel      uint32
	Reserved   [3]uint16
}

var (
	_ blit.Conn  = (*frameBuffer)(nil)
	_ blit.Image = (*fbImage)(nil)
)
