//go:build !((darwin && !ios) || linux)

package shm

import (
	"errors"
)

// ErrNotSupported is returned on platforms without SysV shared memory.
var ErrNotSupported = errors.New("shm: not supported on this platform")

// Supported reports whether SysV shared memory is available on this platform.
func Supported() bool {
	return false
}

type sysv struct{}

func (sysv) Get(int) (int, error) {
	return 0, ErrNotSupported
}

func (sysv) Attach(int) ([]byte, error) {
	return nil, ErrNotSupported
}

func (sysv) Detach([]byte) error {
	return ErrNotSupported
}

func (sysv) Remove(int) error {
	return ErrNotSupported
}
