//go:build linux

package physical

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Event types and codes used to recognize a gamepad on the evdev
// interface. Only the subset State needs is carried; the kernel defines
// many more.
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	absX     = 0x00
	absY     = 0x01
	absZ     = 0x02
	absRX    = 0x03
	absRY    = 0x04
	absRZ    = 0x05
	absHat0X = 0x10
	absHat0Y = 0x11

	btnSouth  = 0x130 // A
	btnEast   = 0x131 // B
	btnNorth  = 0x133 // X
	btnWest   = 0x134 // Y
	btnTL     = 0x136 // left shoulder
	btnTR     = 0x137 // right shoulder
	btnSelect = 0x13a // back
	btnStart  = 0x13b
	btnThumbL = 0x13d
	btnThumbR = 0x13e

	absMax = 0x3f
	keyMax = 0x2ff
	evMax  = 0x1f
)

// rawEvent mirrors struct input_event from linux/input.h on a 64-bit
// kernel: two timeval fields, then type/code/value.
type rawEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// inputID mirrors struct input_id.
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

func eviocgname(length uint) uint { return iocEncode(iocRead, 'E', 0x06, length) }
func eviocgbit(ev, length uint) uint {
	return iocEncode(iocRead, 'E', 0x20+ev, length)
}

var eviocgid = iocR(byte('E'), 0x02, inputID{})

// evdevNode wraps one open /dev/input/eventN file descriptor and answers
// the subset of queries the poller needs: device identity, supported
// capabilities, and the blocking event stream.
type evdevNode struct {
	file *os.File
	fd   uintptr
}

// openEvdevNode opens the evdev device at path for read-only blocking
// reads of its event stream.
func openEvdevNode(path string) (*evdevNode, error) {
	var (
		file *os.File
		err  error
	)

	file, err = os.OpenFile(filepath.Clean(path), os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("physical.openEvdevNode: %w", err)
	}

	return &evdevNode{file: file, fd: file.Fd()}, nil
}

// evdevNodes globs /dev/input for candidate event devices.
func evdevNodes() ([]string, error) {
	var (
		paths []string
		err   error
	)

	paths, err = filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("physical.evdevNodes: %w", err)
	}

	return paths, nil
}

// name returns the kernel-reported device name.
func (n *evdevNode) name() (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl(n.fd, eviocgname(256), &buf[0])
	if err != nil {
		return "", fmt.Errorf("evdevNode.name: %w", err)
	}

	return unix.ByteSliceToString(buf), nil
}

// id returns the kernel-reported bus/vendor/product/version identity.
func (n *evdevNode) id() (inputID, error) {
	var (
		id  inputID
		err error
	)

	err = ioctl(n.fd, eviocgid, &id)
	if err != nil {
		return inputID{}, fmt.Errorf("evdevNode.id: %w", err)
	}

	return id, nil
}

// testBit reports whether bit pos is set in a kernel capability bitmask.
func testBit(b []byte, pos uint) bool {
	return b[pos/8]&(1<<(pos%8)) != 0
}

// isGamepad reports whether the device exposes both absolute axes and
// buttons, the usual heuristic for "this is a gamepad".
func (n *evdevNode) isGamepad() (bool, error) {
	var (
		evBuf          []byte
		hasAbs, hasKey bool
		err            error
	)

	evBuf = make([]byte, (evMax+7)/8)

	err = ioctl(n.fd, eviocgbit(0, uint(len(evBuf))), &evBuf[0])
	if err != nil {
		return false, fmt.Errorf("evdevNode.isGamepad: %w", err)
	}

	hasAbs = testBit(evBuf, evAbs)
	hasKey = testBit(evBuf, evKey)

	return hasAbs && hasKey, nil
}

// readEvent blocks for the next raw input_event on this node.
func (n *evdevNode) readEvent() (rawEvent, error) {
	var (
		buf [24]byte
		ev  rawEvent
		err error
	)

	_, err = n.file.Read(buf[:])
	if err != nil {
		return rawEvent{}, fmt.Errorf("evdevNode.readEvent: %w", err)
	}

	ev.Sec = int64(le64(buf[0:8]))
	ev.Usec = int64(le64(buf[8:16]))
	ev.Type = le16(buf[16:18])
	ev.Code = le16(buf[18:20])
	ev.Value = int32(le32(buf[20:24]))

	return ev, nil
}

func (n *evdevNode) close() error {
	var err error

	err = n.file.Close()
	if err != nil {
		return fmt.Errorf("evdevNode.close: %w", err)
	}

	return nil
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
func le64(b []byte) uint64 {
	return uint64(le32(b[0:4])) | uint64(le32(b[4:8]))<<32
}
