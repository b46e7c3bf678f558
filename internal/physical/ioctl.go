//go:build linux

// On Linux the modern per-user gamepad API is the kernel's evdev
// joystick interface (/dev/input/eventN); this file adapts the ioctl
// request-code encoding from include/uapi/asm-generic/ioctl.h.
package physical

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
	iocRead  = 2
)

// iocEncode packs the four ioctl components into a single request code.
// dir is one of iocNone/iocRead/iocWrite, typ is the subsystem's magic
// number, nr is the command number, and size is the byte size of any
// data transferred.
func iocEncode(dir, typ, nr, size uint) uint {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

// iocR builds a "read" ioctl request code whose transfer size is
// sizeof(zero), inferred from the zero value passed in.
func iocR[T any](typ byte, nr uint, zero T) uint {
	return iocEncode(iocRead, uint(typ), nr, uint(unsafe.Sizeof(zero)))
}

// ioctl performs the raw ioctl syscall on fd, sending req and the address
// of arg. On success *arg is populated with any data the kernel wrote back.
func ioctl[T any](fd uintptr, req uint, arg *T) error {
	var errno syscall.Errno

	_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(unsafe.Pointer(arg)))
	if errno != 0 {
		return errno
	}

	return nil
}
