// Package mapper binds one element mapper per physical control element
// into a named, immutable bundle and computes its capabilities.
package mapper

import (
	"sort"

	"github.com/xidi-go/xidi/internal/elementmap"
	"github.com/xidi-go/xidi/internal/xinput"
)

// Definition is an immutable bundle binding one optional element mapper
// per physical control element: two sticks, two triggers, the dpad, and
// the face/shoulder/stick/back/start buttons. Any slot may be nil,
// meaning that physical element is ignored.
type Definition struct {
	Name string

	StickLeftX, StickLeftY   elementmap.Element
	StickRightX, StickRightY elementmap.Element
	DpadUp, DpadDown         elementmap.Element
	DpadLeft, DpadRight      elementmap.Element
	TriggerLT, TriggerRT     elementmap.Element
	ButtonA, ButtonB         elementmap.Element
	ButtonX, ButtonY         elementmap.Element
	ButtonLB, ButtonRB       elementmap.Element
	ButtonBack, ButtonStart  elementmap.Element
	ButtonLS, ButtonRS       elementmap.Element

	caps Capabilities
}

// Capabilities describes what a Definition actually exposes: the set of
// virtual axes contributed to, the number of distinct buttons
// contributed to, and whether a POV is present.
type Capabilities struct {
	Axes      map[elementmap.Axis]bool
	ButtonMax int
	HasPov    bool
}

// slots returns every bound element mapper, for capability computation
// and for the mapping pass itself.
func (d *Definition) slots() []elementmap.Element {
	return []elementmap.Element{
		d.StickLeftX, d.StickLeftY, d.StickRightX, d.StickRightY,
		d.DpadUp, d.DpadDown, d.DpadLeft, d.DpadRight,
		d.TriggerLT, d.TriggerRT,
		d.ButtonA, d.ButtonB, d.ButtonX, d.ButtonY,
		d.ButtonLB, d.ButtonRB, d.ButtonBack, d.ButtonStart,
		d.ButtonLS, d.ButtonRS,
	}
}

// New finalizes a Definition by computing its capabilities once, by
// walking every bound element mapper for its target elements.
func New(name string, fields Definition) *Definition {
	fields.Name = name
	fields.caps = computeCapabilities(fields.slots())

	return &fields
}

func computeCapabilities(elements []elementmap.Element) Capabilities {
	caps := Capabilities{Axes: map[elementmap.Axis]bool{}}

	for _, e := range elements {
		if e == nil {
			continue
		}

		for _, target := range e.Targets() {
			switch target.Kind {
			case elementmap.KindAxis:
				caps.Axes[target.Axis] = true
			case elementmap.KindButton:
				if target.Button > caps.ButtonMax {
					caps.ButtonMax = target.Button
				}
			case elementmap.KindPov:
				caps.HasPov = true
			}
		}
	}

	return caps
}

// Capabilities returns the bundle's precomputed capability set.
func (d *Definition) Capabilities() Capabilities {
	return d.caps
}

// SortedAxes returns the axes this definition contributes to, in
// canonical enumeration order.
func (c Capabilities) SortedAxes() []elementmap.Axis {
	axes := make([]elementmap.Axis, 0, len(c.Axes))

	for a := range c.Axes {
		axes = append(axes, a)
	}

	sort.Slice(axes, func(i, j int) bool { return axes[i] < axes[j] })

	return axes
}

// Map runs one full mapping pass: every bound element mapper
// contributes from the corresponding field of sample into a fresh
// elementmap.State, which is clamped before being returned.
func (d *Definition) Map(sample xinput.Sample) elementmap.State {
	out := elementmap.NewState(d.caps.ButtonMax)

	contributeAnalog(d.StickLeftX, sample.StickLeftX, &out)
	contributeAnalog(d.StickLeftY, sample.StickLeftY, &out)
	contributeAnalog(d.StickRightX, sample.StickRightX, &out)
	contributeAnalog(d.StickRightY, sample.StickRightY, &out)
	contributeTrigger(d.TriggerLT, sample.TriggerLT, &out)
	contributeTrigger(d.TriggerRT, sample.TriggerRT, &out)
	contributeButton(d.DpadUp, sample.DpadUp, &out)
	contributeButton(d.DpadDown, sample.DpadDown, &out)
	contributeButton(d.DpadLeft, sample.DpadLeft, &out)
	contributeButton(d.DpadRight, sample.DpadRight, &out)
	contributeButton(d.ButtonA, sample.Buttons[0], &out)
	contributeButton(d.ButtonB, sample.Buttons[1], &out)
	contributeButton(d.ButtonX, sample.Buttons[2], &out)
	contributeButton(d.ButtonY, sample.Buttons[3], &out)
	contributeButton(d.ButtonLB, sample.Buttons[4], &out)
	contributeButton(d.ButtonRB, sample.Buttons[5], &out)
	contributeButton(d.ButtonBack, sample.Buttons[6], &out)
	contributeButton(d.ButtonStart, sample.Buttons[7], &out)
	contributeButton(d.ButtonLS, sample.Buttons[8], &out)
	contributeButton(d.ButtonRS, sample.Buttons[9], &out)

	out.Clamp()

	return out
}

func contributeAnalog(e elementmap.Element, v float64, out *elementmap.State) {
	if e != nil {
		e.ContributeAnalog(v, out)
	}
}

func contributeTrigger(e elementmap.Element, v float64, out *elementmap.State) {
	if e != nil {
		e.ContributeTrigger(v, out)
	}
}

func contributeButton(e elementmap.Element, pressed bool, out *elementmap.State) {
	if e != nil {
		e.ContributeButton(pressed, out)
	}
}
