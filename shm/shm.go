// Package shm manages the shared memory segment used by the presentation fast
// path.
//
// A Manager owns at most one SysV shared memory segment at a time. The segment
// is created lazily, reused as long as it is large enough, and replaced by a
// larger one when a bigger frame arrives; the previous segment is released
// before its replacement is allocated. On operating systems without SysV
// shared memory [Supported] reports false, which callers treat as "use the
// direct transport", not as an error.
package shm

import (
	"errors"
	"fmt"
)

// ErrSegmentSize is returned by Acquire for non-positive sizes.
var ErrSegmentSize = errors.New("shm: segment size must be positive")

// ipc abstracts the shared memory system primitives so tests can intercept
// them.
type ipc interface {
	Get(size int) (int, error)
	Attach(id int) ([]byte, error)
	Detach(buf []byte) error
	Remove(id int) error
}

// Segment is a shared memory region visible both to this process and, by
// identifier, to the display server.
type Segment struct {
	id  int
	buf []byte
}

// ID returns the system identifier of the segment.
func (s *Segment) ID() int {
	return s.id
}

// Bytes returns the mapped region. The slice remains valid until the owning
// Manager replaces or closes the segment.
func (s *Segment) Bytes() []byte {
	return s.buf
}

// Size returns the segment capacity in bytes.
func (s *Segment) Size() int {
	return len(s.buf)
}

// Stats are counters of segment operations.
type Stats struct {
	// Allocs counts segments allocated and mapped.
	Allocs uint64

	// Reuses counts acquisitions satisfied by the existing segment.
	Reuses uint64

	// Releases counts segments unmapped and removed.
	Releases uint64
}

// Manager owns at most one shared memory segment, reused across frames.
//
// A Manager is not safe for concurrent use; the presentation engine that owns
// it serializes access.
type Manager struct {
	sys   ipc
	seg   *Segment
	stats Stats
}

// NewManager returns a Manager that allocates through the operating system's
// SysV shared memory primitives. No segment is allocated until Acquire.
func NewManager() *Manager {
	return &Manager{sys: sysv{}}
}

// Acquire returns a segment of at least size bytes, mapped for local
// read/write. The current segment is returned unchanged when it is large
// enough; otherwise it is released and a new segment of exactly size bytes
// takes its place.
func (m *Manager) Acquire(size int) (*Segment, error) {
	if size <= 0 {
		return nil, ErrSegmentSize
	}
	if m.sys == nil {
		m.sys = sysv{}
	}

	if m.seg != nil && m.seg.Size() >= size {
		m.stats.Reuses++
		return m.seg, nil
	}

	// The previous segment goes away before the replacement is allocated, so
	// a denied allocation never leaves two segments outstanding.
	_ = m.release()

	id, err := m.sys.Get(size)
	if err != nil {
		return nil, fmt.Errorf("shm: allocate %d byte segment: %w", size, err)
	}

	buf, err := m.sys.Attach(id)
	if err != nil {
		// The identifier must not outlive a failed mapping.
		_ = m.sys.Remove(id)
		return nil, fmt.Errorf("shm: map segment %d: %w", id, err)
	}

	m.seg = &Segment{id: id, buf: buf}
	m.stats.Allocs++
	return m.seg, nil
}

// Close releases the current segment, if any. The region is unmapped first
// and its identifier removed after; both steps are attempted even if the
// first fails.
func (m *Manager) Close() error {
	return m.release()
}

// Stats returns a snapshot of the manager's counters.
func (m *Manager) Stats() Stats {
	return m.stats
}

func (m *Manager) release() error {
	if m.seg == nil {
		return nil
	}
	seg := m.seg
	m.seg = nil
	m.stats.Releases++

	err := m.sys.Detach(seg.buf)
	if rerr := m.sys.Remove(seg.id); err == nil {
		err = rerr
	}
	return err
}
