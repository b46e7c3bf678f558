// Package guidcodec encodes and decodes the fixed 16-byte identifier
// template used for virtual-controller instance identifiers, with one
// byte carrying the controller index.
package guidcodec

import "fmt"

// Template is the fixed prefix shared by every virtual-controller GUID;
// the last byte is overwritten with the controller index.
var Template = [16]byte{
	0x58, 0x49, 0x44, 0x49, // "XIDI"
	0xc0, 0x47, 0x11, 0xe0,
	0x95, 0x55, 0x00, 0x02,
	0xa5, 0xd5, 0xc5, 0x1b,
}

// indexByte is the offset within Template that carries the controller
// index, its low byte.
const indexByte = 15

// Encode returns the virtual-controller GUID for the given 0-based
// controller index.
func Encode(index int) [16]byte {
	g := Template
	g[indexByte] = byte(index)

	return g
}

// Decode reports whether g is a virtual-controller GUID and, if so, its
// controller index.
func Decode(g [16]byte) (index int, ok bool) {
	candidate := g
	candidate[indexByte] = Template[indexByte]

	if candidate != Template {
		return 0, false
	}

	return int(g[indexByte]), true
}

// ProductName is the display name shown during enumeration.
func ProductName(index int) string {
	return fmt.Sprintf("Xidi: Virtual Controller %d", index)
}
