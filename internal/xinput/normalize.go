// Package xinput normalizes raw physical-slot samples into the
// normalized analog domain ([-1, 1] for sticks, [0, 1] for triggers) that
// element mappers contribute from.
package xinput

import "github.com/xidi-go/xidi/internal/physical"

// EngagedFraction is the shared "engaged" threshold: an analog or
// trigger input at or beyond this fraction of its range is considered
// pressed when contributing to a button or POV direction.
const EngagedFraction = 1.0 / 3.0

// StickAxis normalizes a signed 16-bit stick axis reading to [-1, 1].
func StickAxis(v int16) float64 {
	if v >= 0 {
		return float64(v) / 32767.0
	}

	return float64(v) / 32768.0
}

// Trigger normalizes an unsigned 8-bit trigger reading to [0, 1].
func Trigger(v uint8) float64 {
	return float64(v) / 255.0
}

// Engaged reports whether a normalized analog magnitude meets the shared
// engaged threshold.
func Engaged(magnitude float64) bool {
	if magnitude < 0 {
		magnitude = -magnitude
	}

	return magnitude >= EngagedFraction
}

// Sample is the physical slot's state decomposed into the named inputs
// a mapper definition binds element mappers to.
type Sample struct {
	StickLeftX, StickLeftY   float64
	StickRightX, StickRightY float64
	TriggerLT, TriggerRT     float64
	DpadUp, DpadDown         bool
	DpadLeft, DpadRight      bool
	Buttons                  [physical.ButtonCount]bool
}

// FromState decomposes a raw physical.State into a Sample, including the
// hat-switch (dpad) directions.
func FromState(s physical.State) Sample {
	var sample Sample

	sample.StickLeftX = StickAxis(s.LX)
	sample.StickLeftY = StickAxis(s.LY)
	sample.StickRightX = StickAxis(s.RX)
	sample.StickRightY = StickAxis(s.RY)
	sample.TriggerLT = Trigger(s.LT)
	sample.TriggerRT = Trigger(s.RT)
	sample.DpadUp = s.HatY < 0
	sample.DpadDown = s.HatY > 0
	sample.DpadLeft = s.HatX < 0
	sample.DpadRight = s.HatX > 0

	for b := physical.Button(0); b < physical.ButtonCount; b++ {
		sample.Buttons[b] = s.Pressed(b)
	}

	return sample
}
