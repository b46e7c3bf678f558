package elementmap

// ElementID names a single virtual-controller element an element mapper
// can target, used by Mapper when computing capabilities.
type ElementID struct {
	Kind ElementKind
	Axis Axis
	Pov  PovComponent
	// Button is the 1-based button index when Kind is KindButton.
	Button int
}

// ElementKind distinguishes what an ElementID refers to.
type ElementKind int

const (
	KindAxis ElementKind = iota
	KindButton
	KindPov
)

// Direction restricts an axis mapper to one half of its input range, or
// leaves it unrestricted.
type Direction int

const (
	Both Direction = iota
	Positive
	Negative
)

// Element is the common contract every element mapper variant
// implements.
type Element interface {
	// ContributeAnalog feeds a normalized analog input in [-1, 1] (a
	// stick axis) into out.
	ContributeAnalog(input float64, out *State)
	// ContributeButton feeds a digital (already-pressed) input into out.
	ContributeButton(pressed bool, out *State)
	// ContributeTrigger feeds a normalized trigger input in [0, 1] into out.
	ContributeTrigger(input float64, out *State)
	// Targets lists every virtual element this mapper contributes to.
	Targets() []ElementID
	// Clone returns an independent copy.
	Clone() Element
}

// scaleSigned maps an input in [-1, 1] to a displacement from neutral,
// scaling toward AxisMax on the positive side and AxisMin on the
// negative side so a full-scale negative input lands exactly on the
// asymmetric internal minimum.
func scaleSigned(input float64) int32 {
	if input >= 0 {
		return int32(input * AxisMax)
	}

	return int32(input * -AxisMin)
}

// scalePositive maps a magnitude in [0, 1] to a positive displacement.
func scalePositive(magnitude float64) int32 {
	return int32(magnitude * AxisMax)
}

// scaleNegative maps a magnitude in [0, 1] to a negative displacement,
// reaching exactly AxisMin at magnitude 1.
func scaleNegative(magnitude float64) int32 {
	return int32(magnitude * AxisMin)
}

// AxisMapper linearly scales an analog stick axis into a virtual axis.
type AxisMapper struct {
	Target    Axis
	Direction Direction
}

func (m AxisMapper) ContributeAnalog(input float64, out *State) {
	switch m.Direction {
	case Positive:
		if input < 0 {
			input = 0
		}

		out.AddAxis(m.Target, scalePositive(input))
	case Negative:
		if input > 0 {
			input = 0
		}

		out.AddAxis(m.Target, scaleNegative(-input))
	default:
		out.AddAxis(m.Target, scaleSigned(input))
	}
}

func (m AxisMapper) ContributeButton(bool, *State) {}

// ContributeTrigger maps a trigger's always-nonnegative [0, 1] reading
// onto the half of the axis this mapper's Direction names — the trigger
// itself carries no sign, so Direction picks which side of neutral it
// pushes toward. Both sides scale by the magnitude of AxisMin, so two
// full opposing triggers on one axis cancel to exactly neutral; a lone
// full positive trigger overshoots by one and State.Clamp brings it back
// to AxisMax.
func (m AxisMapper) ContributeTrigger(input float64, out *State) {
	if m.Direction == Negative {
		out.AddAxis(m.Target, scaleNegative(input))
		return
	}

	out.AddAxis(m.Target, int32(input*-AxisMin))
}
func (m AxisMapper) Targets() []ElementID {
	return []ElementID{{Kind: KindAxis, Axis: m.Target}}
}
func (m AxisMapper) Clone() Element { return m }

// DigitalAxisMapper behaves like AxisMapper but saturates to
// -max/0/+max only once the engaged threshold is crossed.
type DigitalAxisMapper struct {
	Target    Axis
	Direction Direction
}

func (m DigitalAxisMapper) engagedValue(input float64) int32 {
	switch {
	case input >= EngagedFraction:
		return AxisMax
	case input <= -EngagedFraction:
		return AxisMin
	default:
		return 0
	}
}

func (m DigitalAxisMapper) ContributeAnalog(input float64, out *State) {
	switch m.Direction {
	case Positive:
		if input < 0 {
			input = 0
		}
	case Negative:
		if input > 0 {
			input = 0
		}
	}

	out.AddAxis(m.Target, m.engagedValue(input))
}

func (m DigitalAxisMapper) ContributeButton(bool, *State) {}

// ContributeTrigger applies the same always-nonnegative trigger handling
// as AxisMapper.ContributeTrigger, then digitalizes the result.
func (m DigitalAxisMapper) ContributeTrigger(input float64, out *State) {
	magnitude := input
	if m.Direction == Negative {
		magnitude = -input
	}

	out.AddAxis(m.Target, m.engagedValue(magnitude))
}
func (m DigitalAxisMapper) Targets() []ElementID {
	return []ElementID{{Kind: KindAxis, Axis: m.Target}}
}
func (m DigitalAxisMapper) Clone() Element { return m }

// ButtonMapper sets a single virtual button, ORing with any existing
// contribution.
type ButtonMapper struct {
	Target int
}

func (m ButtonMapper) ContributeAnalog(input float64, out *State) {
	m.ContributeButton(input >= EngagedFraction || input <= -EngagedFraction, out)
}
func (m ButtonMapper) ContributeButton(pressed bool, out *State) { out.OrButton(m.Target, pressed) }
func (m ButtonMapper) ContributeTrigger(input float64, out *State) {
	m.ContributeButton(input >= EngagedFraction, out)
}
func (m ButtonMapper) Targets() []ElementID {
	return []ElementID{{Kind: KindButton, Button: m.Target}}
}
func (m ButtonMapper) Clone() Element { return m }

// PovMapper sets one directional component of the virtual POV when its
// input is "engaged".
type PovMapper struct {
	Target PovComponent
}

func (m PovMapper) ContributeAnalog(input float64, out *State) {
	out.OrPov(m.Target, input >= EngagedFraction || input <= -EngagedFraction)
}
func (m PovMapper) ContributeButton(pressed bool, out *State) { out.OrPov(m.Target, pressed) }
func (m PovMapper) ContributeTrigger(input float64, out *State) {
	out.OrPov(m.Target, input >= EngagedFraction)
}
func (m PovMapper) Targets() []ElementID {
	return []ElementID{{Kind: KindPov, Pov: m.Target}}
}
func (m PovMapper) Clone() Element { return m }

// KeyboardMapper submits a physical input to the external keyboard
// synthesis layer. That layer's internals are out of scope; SubmitKey
// is the whole of the contract this core needs.
type KeyboardMapper struct {
	Target   KeySubmitter
	Scancode int
}

// KeySubmitter is the external keyboard synthesis collaborator.
type KeySubmitter interface {
	SubmitKey(scancode int, pressed bool) error
}

func (m KeyboardMapper) ContributeAnalog(input float64, out *State) {
	m.ContributeButton(input >= EngagedFraction || input <= -EngagedFraction, out)
}
func (m KeyboardMapper) ContributeButton(pressed bool, _ *State) {
	if m.Target != nil {
		_ = m.Target.SubmitKey(m.Scancode, pressed)
	}
}
func (m KeyboardMapper) ContributeTrigger(input float64, out *State) {
	m.ContributeButton(input >= EngagedFraction, out)
}
func (m KeyboardMapper) Targets() []ElementID { return nil }
func (m KeyboardMapper) Clone() Element       { return m }

// MouseMapper submits a physical input to the external mouse synthesis
// layer.
type MouseMapper struct {
	Target  MouseSubmitter
	Axis    int
	Button  int
	IsAxis  bool
}

// MouseSubmitter is the external mouse synthesis collaborator.
type MouseSubmitter interface {
	SubmitMouseAxis(axis int, delta float64) error
	SubmitMouseButton(button int, pressed bool) error
}

func (m MouseMapper) ContributeAnalog(input float64, _ *State) {
	if m.Target == nil {
		return
	}

	if m.IsAxis {
		_ = m.Target.SubmitMouseAxis(m.Axis, input)
	} else {
		_ = m.Target.SubmitMouseButton(m.Button, input >= EngagedFraction || input <= -EngagedFraction)
	}
}
func (m MouseMapper) ContributeButton(pressed bool, _ *State) {
	if m.Target != nil && !m.IsAxis {
		_ = m.Target.SubmitMouseButton(m.Button, pressed)
	}
}
func (m MouseMapper) ContributeTrigger(input float64, out *State) { m.ContributeAnalog(input, out) }
func (m MouseMapper) Targets() []ElementID                        { return nil }
func (m MouseMapper) Clone() Element                               { return m }

// InvertMapper flips the sign of an analog input, and replaces a trigger
// input v with 1-v, before delegating to an inner element mapper.
type InvertMapper struct {
	Inner Element
}

func (m InvertMapper) ContributeAnalog(input float64, out *State) { m.Inner.ContributeAnalog(-input, out) }
func (m InvertMapper) ContributeButton(pressed bool, out *State)  { m.Inner.ContributeButton(pressed, out) }
func (m InvertMapper) ContributeTrigger(input float64, out *State) {
	m.Inner.ContributeTrigger(1-input, out)
}
func (m InvertMapper) Targets() []ElementID { return m.Inner.Targets() }
func (m InvertMapper) Clone() Element       { return InvertMapper{Inner: m.Inner.Clone()} }

// SplitMapper routes the negative half of an analog input to one inner
// mapper and the positive half to another.
type SplitMapper struct {
	NegativeInner Element
	PositiveInner Element
}

func (m SplitMapper) ContributeAnalog(input float64, out *State) {
	if input < 0 {
		m.NegativeInner.ContributeAnalog(input, out)
	} else {
		m.PositiveInner.ContributeAnalog(input, out)
	}
}
func (m SplitMapper) ContributeButton(pressed bool, out *State) {
	m.NegativeInner.ContributeButton(pressed, out)
	m.PositiveInner.ContributeButton(pressed, out)
}
func (m SplitMapper) ContributeTrigger(input float64, out *State) {
	m.PositiveInner.ContributeTrigger(input, out)
}
func (m SplitMapper) Targets() []ElementID {
	return append(m.NegativeInner.Targets(), m.PositiveInner.Targets()...)
}
func (m SplitMapper) Clone() Element {
	return SplitMapper{NegativeInner: m.NegativeInner.Clone(), PositiveInner: m.PositiveInner.Clone()}
}

// CompoundMapper fans one physical input out to several inner mappers.
type CompoundMapper struct {
	Inner []Element
}

func (m CompoundMapper) ContributeAnalog(input float64, out *State) {
	for _, inner := range m.Inner {
		inner.ContributeAnalog(input, out)
	}
}
func (m CompoundMapper) ContributeButton(pressed bool, out *State) {
	for _, inner := range m.Inner {
		inner.ContributeButton(pressed, out)
	}
}
func (m CompoundMapper) ContributeTrigger(input float64, out *State) {
	for _, inner := range m.Inner {
		inner.ContributeTrigger(input, out)
	}
}
func (m CompoundMapper) Targets() []ElementID {
	var ids []ElementID

	for _, inner := range m.Inner {
		ids = append(ids, inner.Targets()...)
	}

	return ids
}
func (m CompoundMapper) Clone() Element {
	cloned := make([]Element, len(m.Inner))
	for i, inner := range m.Inner {
		cloned[i] = inner.Clone()
	}

	return CompoundMapper{Inner: cloned}
}
