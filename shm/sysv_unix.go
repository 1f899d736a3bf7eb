//go:build (darwin && !ios) || linux

package shm

import (
	"golang.org/x/sys/unix"
)

// Supported reports whether SysV shared memory is available on this platform.
func Supported() bool {
	return true
}

// sysv implements ipc on the kernel's SysV shared memory calls.
type sysv struct{}

func (sysv) Get(size int) (int, error) {
	return unix.SysvShmGet(unix.IPC_PRIVATE, size, unix.IPC_CREAT|0o600)
}

func (sysv) Attach(id int) ([]byte, error) {
	return unix.SysvShmAttach(id, 0, 0)
}

func (sysv) Detach(buf []byte) error {
	return unix.SysvShmDetach(buf)
}

func (sysv) Remove(id int) error {
	_, err := unix.SysvShmCtl(id, unix.IPC_RMID, nil)
	return err
}
