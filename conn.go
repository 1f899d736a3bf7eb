package blit

import (
	"encoding/binary"
)

// Conn is a connection to a presentation target: a window on a display
// server, or a memory-mapped device. Backends construct values of this type;
// the Presenter only borrows them.
type Conn interface {
	String() string

	// Close the connection and the target resources bound to it.
	Close() error

	// Bounds returns the target's current dimensions.
	Bounds() (width, height uint16, err error)

	// SharedMemory reports whether the target accepts shared memory
	// presentation. The capability is probed once, when the connection is
	// opened.
	SharedMemory() bool

	// ByteOrder is the byte order of a packed pixel as the target reads it.
	ByteOrder() binary.ByteOrder

	// CreateSharedImage registers a shared memory segment with the target
	// and returns an image backed by it. The segment holds width×height
	// packed pixels, row after row.
	CreateSharedImage(seg Segment, width, height uint16) (Image, error)

	// CreateImage returns an image whose pixels travel over the connection
	// on Draw. Rows start stride bytes apart in data.
	CreateImage(data []byte, width, height uint16, stride int) (Image, error)

	// Draw presents the top-left width×height region of the image at
	// (x, y) and blocks until the target no longer reads from the image's
	// memory.
	Draw(img Image, x, y int, width, height uint16) error
}

// Image is a presentable image bound to a connection.
type Image interface {
	// Destroy releases the target's binding to the image. The image must
	// not be drawn afterwards.
	Destroy() error
}

// Segment is a region of memory shared between this process and the
// presentation target.
type Segment interface {
	// ID is the system identifier the target attaches to.
	ID() int

	// Bytes is the process-local mapping.
	Bytes() []byte
}
