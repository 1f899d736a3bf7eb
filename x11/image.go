package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/BeatGlow/blit"
)

// putImageHeader is the fixed part of a PutImage request in bytes.
const putImageHeader = 24

// sharedImage is a shared memory segment attached to the server.
type sharedImage struct {
	conn          *Conn
	seg           shm.Seg
	width, height uint16
}

// wireImage is pixel data that travels over the connection on Draw.
type wireImage struct {
	conn   *Conn
	data   []byte
	stride int
}

// CreateSharedImage attaches the segment to the server and returns an image
// reading from it. The attach is checked, so a server that rejects the
// segment (a remote server cannot map it) reports here and the caller can
// fall back.
func (c *Conn) CreateSharedImage(seg blit.Segment, width, height uint16) (blit.Image, error) {
	segID, err := shm.NewSegId(c.c)
	if err != nil {
		return nil, fmt.Errorf("x11: allocate segment id: %w", err)
	}
	if err = shm.AttachChecked(c.c, segID, uint32(seg.ID()), false).Check(); err != nil {
		return nil, fmt.Errorf("x11: attach segment %d: %w", seg.ID(), err)
	}

	return &sharedImage{conn: c, seg: segID, width: width, height: height}, nil
}

// CreateImage wraps pixel data for the direct path; nothing is sent until
// Draw. The data must hold height rows of stride bytes, each carrying width
// packed pixels.
func (c *Conn) CreateImage(data []byte, width, height uint16, stride int) (blit.Image, error) {
	if stride < int(width)*4 || len(data) < int(height)*stride {
		return nil, ErrImageData
	}
	return &wireImage{conn: c, data: data, stride: stride}, nil
}

// Draw presents the top-left width×height region of the image at (x, y) in
// the window. It blocks until the server is done reading from the image's
// memory.
func (c *Conn) Draw(img blit.Image, x, y int, width, height uint16) error {
	switch i := img.(type) {
	case *sharedImage:
		if i.conn != c {
			return ErrImage
		}
		return c.drawShared(i, x, y, width, height)
	case *wireImage:
		if i.conn != c {
			return ErrImage
		}
		return c.drawWire(i, x, y, width, height)
	default:
		return ErrImage
	}
}

// drawShared issues one shared memory put. The checked reply doubles as the
// completion fence: once Check returns, the server has read the segment and
// the caller may overwrite it.
func (c *Conn) drawShared(img *sharedImage, x, y int, width, height uint16) error {
	err := shm.PutImageChecked(c.c, xproto.Drawable(c.window), c.gc,
		img.width, img.height,
		0, 0, width, height,
		int16(x), int16(y),
		c.depth, xproto.ImageFormatZPixmap,
		0, img.seg, 0).Check()
	if err != nil {
		return fmt.Errorf("x11: shared memory put: %w", err)
	}
	return nil
}

// drawWire sends the pixel rows in requests bounded by the server's maximum
// request length. All requests are issued before the first reply is awaited,
// so a multi-band frame costs one round trip, not one per band.
func (c *Conn) drawWire(img *wireImage, x, y int, width, height uint16) error {
	if width == 0 || height == 0 {
		return nil
	}

	rowLen := int(width) * 4
	rows := rowsPerRequest(c.maxReq, rowLen)
	if rows < 1 {
		return ErrRowSize
	}
	if rowLen != img.stride {
		// Rows wider than the drawn region are not contiguous and cannot
		// be banded; send them one at a time, trimmed.
		rows = 1
	}

	cookies := make([]xproto.PutImageCookie, 0, (int(height)+rows-1)/rows)
	for row := 0; row < int(height); row += rows {
		n := rows
		if rest := int(height) - row; n > rest {
			n = rest
		}

		var data []byte
		if n > 1 {
			data = img.data[row*img.stride : (row+n)*img.stride]
		} else {
			data = img.data[row*img.stride : row*img.stride+rowLen]
		}

		cookies = append(cookies, xproto.PutImageChecked(c.c,
			xproto.ImageFormatZPixmap, xproto.Drawable(c.window), c.gc,
			width, uint16(n), int16(x), int16(y+row),
			0, c.depth, data))
	}

	for _, cookie := range cookies {
		if err := cookie.Check(); err != nil {
			return fmt.Errorf("x11: put image: %w", err)
		}
	}
	return nil
}

// Destroy detaches the segment from the server. The segment itself stays
// mapped and owned by its manager.
func (i *sharedImage) Destroy() error {
	if err := shm.DetachChecked(i.conn.c, i.seg).Check(); err != nil {
		return fmt.Errorf("x11: detach segment: %w", err)
	}
	return nil
}

// Destroy releases the image's reference to its pixel data.
func (i *wireImage) Destroy() error {
	i.data = nil
	return nil
}

// rowsPerRequest is the number of image rows of the given stride that fit in
// one PutImage request on a connection with the given request size limit.
func rowsPerRequest(maxReq, stride int) int {
	if stride <= 0 {
		return 0
	}
	return (maxReq - putImageHeader) / stride
}

var (
	_ blit.Image = (*sharedImage)(nil)
	_ blit.Image = (*wireImage)(nil)
)
