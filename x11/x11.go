// Package x11 presents to a window on an X display server.
//
// The backend speaks the X protocol through github.com/BurntSushi/xgb. When
// the server offers the MIT-SHM extension, frames travel through a shared
// memory segment; otherwise pixel data is written to the connection in
// requests sized to the server's limit.
package x11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/BeatGlow/blit"
)

var debug bool

func init() {
	debug = os.Getenv("BLIT_DEBUG") != ""
}

// Errors
var (
	ErrNoWindow  = errors.New("x11: zero window handle")
	ErrScreen    = errors.New("x11: screen index out of range")
	ErrDepth     = errors.New("x11: window depth is not 24 or 32 bit")
	ErrFormat    = errors.New("x11: no 32 bits per pixel format for the window depth")
	ErrImage     = errors.New("x11: image was not created by this connection")
	ErrImageData = errors.New("x11: image data does not match its dimensions")
	ErrRowSize   = errors.New("x11: image row exceeds the server's request limit")
)

// Config describes how to reach the display server.
type Config struct {
	// Display is the X display string, such as ":0". Empty means the
	// DISPLAY environment variable.
	Display string

	// Screen is the screen number. Negative means the connection's default
	// screen.
	Screen int
}

// DefaultConfig uses the DISPLAY environment variable and its default screen.
var DefaultConfig = Config{
	Screen: -1,
}

// WindowConfig describes a window created by OpenWindow.
type WindowConfig struct {
	// Display is the X display string, such as ":0". Empty means the
	// DISPLAY environment variable.
	Display string

	// Screen is the screen number. Negative means the connection's default
	// screen.
	Screen int

	// Width and Height are the window dimensions in pixels.
	Width  uint16
	Height uint16

	// Title is the window title.
	Title string
}

// DefaultWindowConfig are the default window configuration values.
var DefaultWindowConfig = WindowConfig{
	Screen: -1,
	Width:  640,
	Height: 480,
	Title:  "blit",
}

// Conn is a connection to one window on an X display server. It implements
// blit.Conn.
type Conn struct {
	c       *xgb.Conn
	display string
	screen  *xproto.ScreenInfo
	window  xproto.Window
	gc      xproto.Gcontext
	depth   byte
	order   binary.ByteOrder
	shm     bool
	maxReq  int
	owned   bool
}

// Open wraps an existing window. The window handle comes from whoever owns
// the window; Open binds a graphics context to it and probes the server once
// for shared memory support. Closing the Conn leaves the window alone.
func Open(window uint32, config *Config) (*Conn, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if window == 0 {
		return nil, ErrNoWindow
	}

	c, err := open(config.Display, config.Screen)
	if err != nil {
		return nil, err
	}
	c.window = xproto.Window(window)

	geom, err := xproto.GetGeometry(c.c, xproto.Drawable(c.window)).Reply()
	if err != nil {
		c.c.Close()
		return nil, fmt.Errorf("x11: query window 0x%x: %w", window, err)
	}
	c.depth = geom.Depth

	if err = c.finish(); err != nil {
		c.c.Close()
		return nil, err
	}
	return c, nil
}

// OpenWindow creates and maps a window on the screen's root, owned by the
// returned Conn and destroyed by its Close.
func OpenWindow(config *WindowConfig) (*Conn, error) {
	if config == nil {
		config = new(WindowConfig)
		*config = DefaultWindowConfig
	}
	if config.Width == 0 {
		config.Width = DefaultWindowConfig.Width
	}
	if config.Height == 0 {
		config.Height = DefaultWindowConfig.Height
	}

	c, err := open(config.Display, config.Screen)
	if err != nil {
		return nil, err
	}

	wid, err := xproto.NewWindowId(c.c)
	if err != nil {
		c.c.Close()
		return nil, fmt.Errorf("x11: allocate window id: %w", err)
	}

	err = xproto.CreateWindowChecked(c.c, c.screen.RootDepth, wid, c.screen.Root,
		0, 0, config.Width, config.Height, 0,
		xproto.WindowClassInputOutput, c.screen.RootVisual,
		xproto.CwBackPixel, []uint32{c.screen.BlackPixel}).Check()
	if err != nil {
		c.c.Close()
		return nil, fmt.Errorf("x11: create window: %w", err)
	}
	c.window = wid
	c.depth = c.screen.RootDepth
	c.owned = true

	if config.Title != "" {
		xproto.ChangeProperty(c.c, xproto.PropModeReplace, wid,
			xproto.AtomWmName, xproto.AtomString, 8,
			uint32(len(config.Title)), []byte(config.Title))
	}

	if err = xproto.MapWindowChecked(c.c, wid).Check(); err != nil {
		c.c.Close()
		return nil, fmt.Errorf("x11: map window: %w", err)
	}

	if err = c.finish(); err != nil {
		c.c.Close()
		return nil, err
	}
	return c, nil
}

// open dials the display server and resolves the screen.
func open(display string, screen int) (*Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}

	if display == "" {
		display = os.Getenv("DISPLAY")
	}

	setup := xproto.Setup(x)
	c := &Conn{
		c:       x,
		display: display,
		order:   setupByteOrder(setup.ImageByteOrder),
		maxReq:  int(setup.MaximumRequestLength) * 4,
	}

	if screen < 0 {
		c.screen = setup.DefaultScreen(x)
	} else if screen < len(setup.Roots) {
		c.screen = &setup.Roots[screen]
	} else {
		x.Close()
		return nil, ErrScreen
	}

	return c, nil
}

// finish validates the window's pixel layout, binds a graphics context and
// probes for the shared memory extension. The window and depth fields must
// be set.
func (c *Conn) finish() error {
	if c.depth != 24 && c.depth != 32 {
		return ErrDepth
	}
	if !hasFormat(xproto.Setup(c.c).PixmapFormats, c.depth) {
		return ErrFormat
	}

	gc, err := xproto.NewGcontextId(c.c)
	if err != nil {
		return fmt.Errorf("x11: allocate graphics context id: %w", err)
	}
	if err = xproto.CreateGCChecked(c.c, gc, xproto.Drawable(c.window), 0, nil).Check(); err != nil {
		return fmt.Errorf("x11: create graphics context: %w", err)
	}
	c.gc = gc

	// Probed once; a server without the extension is not an error, it just
	// means every present goes over the connection.
	if err = shm.Init(c.c); err != nil {
		if debug {
			log.Printf("x11: no shared memory extension: %v", err)
		}
	} else {
		c.shm = true
	}

	return nil
}

func (c *Conn) String() string {
	return fmt.Sprintf("X11 display %s window 0x%x", c.display, c.window)
}

// Close releases the graphics context, destroys the window if OpenWindow
// created it, and closes the connection.
func (c *Conn) Close() error {
	xproto.FreeGC(c.c, c.gc)
	if c.owned {
		xproto.DestroyWindow(c.c, c.window)
	}
	c.c.Close()
	return nil
}

// SharedMemory reports whether the server accepts shared memory presents.
func (c *Conn) SharedMemory() bool {
	return c.shm
}

// ByteOrder returns the image byte order of the server.
func (c *Conn) ByteOrder() binary.ByteOrder {
	return c.order
}

// Bounds returns the window's current width and height.
func (c *Conn) Bounds() (width, height uint16, err error) {
	geom, err := xproto.GetGeometry(c.c, xproto.Drawable(c.window)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("x11: query window 0x%x: %w", c.window, err)
	}
	return geom.Width, geom.Height, nil
}

// setupByteOrder maps the setup's image byte order to an encoder. The X
// protocol defines 0 as least significant byte first.
func setupByteOrder(order byte) binary.ByteOrder {
	if order == 0 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// hasFormat reports whether the server lays out pixels of the given depth as
// 32 bits per pixel.
func hasFormat(formats []xproto.Format, depth byte) bool {
	for _, format := range formats {
		if format.Depth == depth && format.BitsPerPixel == 32 {
			return true
		}
	}
	return false
}

var _ blit.Conn = (*Conn)(nil)
