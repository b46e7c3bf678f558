package deviceapi

import (
	genc "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// narrowCharmap is the legacy single-byte codepage the "A"-suffixed
// entry points encode strings with; the contract's narrow/wide split is
// purely an encoding boundary; both are the same underlying logic.
var narrowCharmap encoding.Encoding = genc.CP1252

var wideCodec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// InstanceNameA returns the device's instance name encoded for the
// narrow ("A"-suffixed) entry points.
func (d *Device) InstanceNameA() ([]byte, error) {
	return narrowCharmap.NewEncoder().Bytes([]byte(d.name))
}

// InstanceNameW returns the device's instance name encoded for the wide
// ("W"-suffixed) entry points as UTF-16LE.
func (d *Device) InstanceNameW() ([]byte, error) {
	return wideCodec.NewEncoder().Bytes([]byte(d.name))
}
