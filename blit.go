// Package blit presents pixel buffers on a display target, over shared
// memory when the target supports it and over the connection itself when it
// does not.
//
// The transport is chosen once, when the Presenter is constructed. A failed
// shared memory present falls back to the direct transport for that frame;
// a failed direct present is reported to the caller.
package blit

import (
	"encoding/binary"
	"errors"
	"log"
	"os"

	"github.com/BeatGlow/blit/pixel"
	"github.com/BeatGlow/blit/shm"
)

var debug bool

func init() {
	debug = os.Getenv("BLIT_DEBUG") != ""
}

// Errors
var (
	ErrNoConn = errors.New("blit: nil connection")
)

const maxInt = int(^uint(0) >> 1)

// Config is the presenter configuration.
type Config struct {
	// NoSharedMemory forces the direct transport even when the connection
	// supports shared memory presentation.
	NoSharedMemory bool
}

// Presenter presents pixel buffers on a connection.
//
// A Presenter is not safe for concurrent use. Present blocks until the
// target no longer reads from the presented buffer, so the caller may reuse
// the buffer as soon as the call returns.
type Presenter struct {
	conn  Conn
	segs  segments
	order binary.ByteOrder
	shm   bool
}

// New returns a Presenter for the connection. The transport is decided here,
// once: shared memory when the platform and the connection both support it
// and the configuration does not disable it, the direct path otherwise. No
// segment is allocated until the first shared memory present.
func New(conn Conn, config *Config) (*Presenter, error) {
	if conn == nil {
		return nil, ErrNoConn
	}
	if config == nil {
		config = new(Config)
	}

	useShm := shm.Supported() && conn.SharedMemory() && !config.NoSharedMemory
	if debug {
		log.Printf("blit: %s: shared memory transport: %t", conn, useShm)
	}

	return &Presenter{
		conn:  conn,
		segs:  managerSegments{shm.NewManager()},
		order: conn.ByteOrder(),
		shm:   useShm,
	}, nil
}

// SharedMemory reports whether presents use the shared memory transport.
func (p *Presenter) SharedMemory() bool {
	return p.shm
}

// Present shows a width×height frame of packed pixels with its top-left
// corner at (x, y) on the connection's target. The pixel slice is read only
// for the duration of the call and must hold exactly width*height values;
// Present panics when it does not, or when the frame's byte size overflows
// int. A zero-area frame presents nothing and returns nil.
func (p *Presenter) Present(pix []uint32, x, y int, width, height uint16) error {
	size := frameSize(width, height)
	if len(pix) != int(width)*int(height) {
		panic("blit: pixel count does not match frame dimensions")
	}
	if size == 0 {
		return nil
	}

	if p.shm {
		err := p.presentShared(pix, x, y, width, height, size)
		if err == nil {
			return nil
		}
		if debug {
			log.Printf("blit: shared memory present failed, using direct transport: %v", err)
		}
	}
	return p.presentDirect(pix, x, y, width, height, size)
}

// Stats returns the segment manager's counters.
func (p *Presenter) Stats() shm.Stats {
	return p.segs.Stats()
}

// Close releases the presenter's shared memory segment, if one is held. The
// connection is borrowed and stays open.
func (p *Presenter) Close() error {
	return p.segs.Close()
}

func (p *Presenter) presentShared(pix []uint32, x, y int, width, height uint16, size int) error {
	seg, err := p.segs.Acquire(size)
	if err != nil {
		return err
	}
	pixel.Pack(seg.Bytes()[:size], pix, p.order)

	img, err := p.conn.CreateSharedImage(seg, width, height)
	if err != nil {
		return err
	}
	err = p.conn.Draw(img, x, y, width, height)
	if derr := img.Destroy(); derr != nil && debug {
		log.Printf("blit: destroy shared image: %v", derr)
	}
	return err
}

func (p *Presenter) presentDirect(pix []uint32, x, y int, width, height uint16, size int) error {
	data := make([]byte, size)
	pixel.Pack(data, pix, p.order)

	img, err := p.conn.CreateImage(data, width, height, int(width)*4)
	if err != nil {
		return err
	}
	err = p.conn.Draw(img, x, y, width, height)
	if derr := img.Destroy(); derr != nil && debug {
		log.Printf("blit: destroy image: %v", derr)
	}
	return err
}

// frameSize is the byte size of a width×height frame of packed pixels. It
// panics when the size overflows int, before any resource is touched.
func frameSize(width, height uint16) int {
	size := uint64(width) * uint64(height) * 4
	if size > uint64(maxInt) {
		panic("blit: frame size overflows int")
	}
	return int(size)
}

// segments is the part of the segment manager the presenter drives; tests
// substitute it.
type segments interface {
	Acquire(size int) (Segment, error)
	Stats() shm.Stats
	Close() error
}

// managerSegments adapts *shm.Manager to the segments seam.
type managerSegments struct {
	m *shm.Manager
}

func (s managerSegments) Acquire(size int) (Segment, error) {
	seg, err := s.m.Acquire(size)
	if err != nil {
		return nil, err
	}
	return seg, nil
}

func (s managerSegments) Stats() shm.Stats {
	return s.m.Stats()
}

func (s managerSegments) Close() error {
	return s.m.Close()
}

var (
	_ segments = managerSegments{}
	_ Segment  = (*shm.Segment)(nil)
)
