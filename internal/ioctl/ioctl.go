// Package ioctl wraps the ioctl system call for device configuration.
package ioctl

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Command is an ioctl request number.
type Command uintptr

func (c Command) String() string {
	return fmt.Sprintf("0x%04x", uintptr(c))
}

// Do executes an ioctl request with a pointer argument.
func Do(fd uintptr, command Command, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), uintptr(arg)); errno != 0 {
		return fmt.Errorf("ioctl %s: %w", command, errno)
	}
	return nil
}

// Call executes an ioctl request with an integer argument.
func Call(fd uintptr, command Command, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), arg); errno != 0 {
		return fmt.Errorf("ioctl %s: %w", command, errno)
	}
	return nil
}
