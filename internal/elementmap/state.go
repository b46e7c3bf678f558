// Package elementmap provides small, composable value objects that each
// contribute one physical input into a virtual controller state.
package elementmap

// Axis identifies one of the canonical virtual axes, in enumeration
// order.
type Axis int

const (
	X Axis = iota
	Y
	Z
	RotX
	RotY
	RotZ
	AxisCount
)

// PovComponent identifies one of the four directional components that
// compose a POV reading.
type PovComponent int

const (
	PovUp PovComponent = iota
	PovDown
	PovLeft
	PovRight
	PovComponentCount
)

// Internal axis range, before properties remap it.
const (
	AxisMin     = -32768
	AxisMax     = 32767
	AxisNeutral = 0
)

// EngagedFraction is the shared analog/trigger "engaged" threshold used
// by button- and POV-producing element mappers.
const EngagedFraction = 1.0 / 3.0

// State is the mutable accumulator a mapping pass builds up. Axis
// contributions sum (saturating); button and POV contributions OR.
type State struct {
	// sum accumulates unclamped contributions; clamping is deferred to
	// Clamp so that an intermediate overshoot followed by an opposite
	// contribution still nets out correctly.
	sum     [AxisCount]int64
	Axis    [AxisCount]int32
	Buttons []bool
	Pov     [PovComponentCount]bool
}

// NewState returns a neutral accumulator sized for buttonCount buttons.
func NewState(buttonCount int) State {
	return State{Buttons: make([]bool, buttonCount)}
}

// AddAxis sums delta into axis a. The running sum is unclamped; call
// Clamp once after the full mapping pass to saturate into range.
func (s *State) AddAxis(a Axis, delta int32) {
	s.sum[a] += int64(delta)
}

// Clamp saturates every axis's accumulated sum into the internal range
// and publishes the result to Axis. Call once per mapping pass, after
// every element mapper has contributed.
func (s *State) Clamp() {
	for a := range s.sum {
		v := s.sum[a]

		switch {
		case v > AxisMax:
			v = AxisMax
		case v < AxisMin:
			v = AxisMin
		}

		s.Axis[a] = int32(v)
	}
}

// OrButton ORs pressed into button index b, 1-based; index 0 is unused
// so button numbering in code matches button numbering in logs and
// config.
func (s *State) OrButton(b int, pressed bool) {
	if b < 1 || b > len(s.Buttons) {
		return
	}

	s.Buttons[b-1] = s.Buttons[b-1] || pressed
}

// OrPov ORs engaged into the named POV directional component.
func (s *State) OrPov(c PovComponent, engaged bool) {
	s.Pov[c] = s.Pov[c] || engaged
}

// PovDir is the eight-way compass direction (or center) a resolved POV
// reading maps to.
type PovDir int

const (
	PovCentered PovDir = iota
	PovN
	PovNE
	PovE
	PovSE
	PovS
	PovSW
	PovW
	PovNW
)

// ResolvePov reduces the four directional components into a single
// compass reading: all four set is centered; otherwise the
// vector sum of the engaged directions rounds to the nearest of the
// eight compass points, and no directions engaged is also centered.
func (s State) ResolvePov() PovDir {
	up, down, left, right := s.Pov[PovUp], s.Pov[PovDown], s.Pov[PovLeft], s.Pov[PovRight]

	if up && down && left && right {
		return PovCentered
	}

	var dy, dx int

	if up {
		dy--
	}

	if down {
		dy++
	}

	if left {
		dx--
	}

	if right {
		dx++
	}

	switch {
	case dx == 0 && dy == 0:
		return PovCentered
	case dx == 0 && dy < 0:
		return PovN
	case dx > 0 && dy < 0:
		return PovNE
	case dx > 0 && dy == 0:
		return PovE
	case dx > 0 && dy > 0:
		return PovSE
	case dx == 0 && dy > 0:
		return PovS
	case dx < 0 && dy > 0:
		return PovSW
	case dx < 0 && dy == 0:
		return PovW
	default:
		return PovNW
	}
}
