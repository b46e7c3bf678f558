package mapper

import (
	"fmt"
	"os"

	"github.com/xidi-go/xidi/internal/elementmap"
	"gopkg.in/yaml.v3"
)

// blueprint is the on-disk shape of a CustomMappers/Blueprint file. The
// INI grammar has no native nesting, so composite combinator mappers
// (invert/split/compound) are expressed here instead, in YAML.
type blueprint struct {
	Name    string               `yaml:"name"`
	Buttons map[string]int       `yaml:"buttons"`
	Axes    map[string]axisEntry `yaml:"axes"`
	Pov     map[string]string    `yaml:"pov"`
}

// axisEntry is a recursive description of one axis slot's element
// mapper. A leaf entry (Axis set) builds an AxisMapper/DigitalAxisMapper,
// optionally Invert-wrapped. Split builds a SplitMapper routing the
// negative and positive halves of the input to two nested entries.
// Compound builds a CompoundMapper fanning the input out to every
// nested entry. Exactly one of Axis, Split, or Compound should be set.
type axisEntry struct {
	Axis      string      `yaml:"axis"`
	Direction string      `yaml:"direction"`
	Digital   bool        `yaml:"digital"`
	Invert    bool        `yaml:"invert"`
	Split     *splitEntry `yaml:"split"`
	Compound  []axisEntry `yaml:"compound"`
}

type splitEntry struct {
	Negative axisEntry `yaml:"negative"`
	Positive axisEntry `yaml:"positive"`
}

var axisNames = map[string]elementmap.Axis{
	"X": elementmap.X, "Y": elementmap.Y, "Z": elementmap.Z,
	"RotX": elementmap.RotX, "RotY": elementmap.RotY, "RotZ": elementmap.RotZ,
}

var povNames = map[string]elementmap.PovComponent{
	"up": elementmap.PovUp, "down": elementmap.PovDown,
	"left": elementmap.PovLeft, "right": elementmap.PovRight,
}

var directionNames = map[string]elementmap.Direction{
	"":         elementmap.Both,
	"both":     elementmap.Both,
	"positive": elementmap.Positive,
	"negative": elementmap.Negative,
}

// LoadCustom reads a YAML mapper blueprint from path and builds the
// Definition it describes.
func LoadCustom(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapper.LoadCustom: %w", err)
	}

	var bp blueprint

	if err := yaml.Unmarshal(raw, &bp); err != nil {
		return nil, fmt.Errorf("mapper.LoadCustom: %w", err)
	}

	fields := Definition{}

	for name, idx := range bp.Buttons {
		if err := bindButton(&fields, name, elementmap.ButtonMapper{Target: idx}); err != nil {
			return nil, fmt.Errorf("mapper.LoadCustom: %w", err)
		}
	}

	for name, entry := range bp.Axes {
		e, err := buildAxisElement(entry)
		if err != nil {
			return nil, fmt.Errorf("mapper.LoadCustom: %s: %w", name, err)
		}

		if err := bindStickOrTrigger(&fields, name, e); err != nil {
			return nil, fmt.Errorf("mapper.LoadCustom: %w", err)
		}
	}

	for name, dir := range bp.Pov {
		comp, ok := povNames[dir]
		if !ok {
			return nil, fmt.Errorf("mapper.LoadCustom: unknown pov direction %q", dir)
		}

		if err := bindDpad(&fields, name, elementmap.PovMapper{Target: comp}); err != nil {
			return nil, fmt.Errorf("mapper.LoadCustom: %w", err)
		}
	}

	return New(bp.Name, fields), nil
}

// buildAxisElement recursively builds the element mapper one axisEntry
// describes: Compound fans out to every nested entry, Split routes the
// negative and positive input halves to two nested entries, and a leaf
// entry builds an AxisMapper/DigitalAxisMapper optionally wrapped in
// InvertMapper.
func buildAxisElement(entry axisEntry) (elementmap.Element, error) {
	if len(entry.Compound) > 0 {
		inner := make([]elementmap.Element, len(entry.Compound))

		for i, sub := range entry.Compound {
			e, err := buildAxisElement(sub)
			if err != nil {
				return nil, err
			}

			inner[i] = e
		}

		return elementmap.CompoundMapper{Inner: inner}, nil
	}

	if entry.Split != nil {
		neg, err := buildAxisElement(entry.Split.Negative)
		if err != nil {
			return nil, err
		}

		pos, err := buildAxisElement(entry.Split.Positive)
		if err != nil {
			return nil, err
		}

		return elementmap.SplitMapper{NegativeInner: neg, PositiveInner: pos}, nil
	}

	axis, ok := axisNames[entry.Axis]
	if !ok {
		return nil, fmt.Errorf("unknown axis %q", entry.Axis)
	}

	dir, ok := directionNames[entry.Direction]
	if !ok {
		return nil, fmt.Errorf("unknown direction %q", entry.Direction)
	}

	var e elementmap.Element
	if entry.Digital {
		e = elementmap.DigitalAxisMapper{Target: axis, Direction: dir}
	} else {
		e = elementmap.AxisMapper{Target: axis, Direction: dir}
	}

	if entry.Invert {
		e = elementmap.InvertMapper{Inner: e}
	}

	return e, nil
}

func bindButton(fields *Definition, name string, e elementmap.Element) error {
	switch name {
	case "a":
		fields.ButtonA = e
	case "b":
		fields.ButtonB = e
	case "x":
		fields.ButtonX = e
	case "y":
		fields.ButtonY = e
	case "lb":
		fields.ButtonLB = e
	case "rb":
		fields.ButtonRB = e
	case "back":
		fields.ButtonBack = e
	case "start":
		fields.ButtonStart = e
	case "ls":
		fields.ButtonLS = e
	case "rs":
		fields.ButtonRS = e
	default:
		return fmt.Errorf("unknown button slot %q", name)
	}

	return nil
}

func bindStickOrTrigger(fields *Definition, name string, e elementmap.Element) error {
	switch name {
	case "stickLeftX":
		fields.StickLeftX = e
	case "stickLeftY":
		fields.StickLeftY = e
	case "stickRightX":
		fields.StickRightX = e
	case "stickRightY":
		fields.StickRightY = e
	case "triggerLT":
		fields.TriggerLT = e
	case "triggerRT":
		fields.TriggerRT = e
	default:
		return fmt.Errorf("unknown axis slot %q", name)
	}

	return nil
}

func bindDpad(fields *Definition, name string, e elementmap.Element) error {
	switch name {
	case "dpadUp":
		fields.DpadUp = e
	case "dpadDown":
		fields.DpadDown = e
	case "dpadLeft":
		fields.DpadLeft = e
	case "dpadRight":
		fields.DpadRight = e
	default:
		return fmt.Errorf("unknown pov slot %q", name)
	}

	return nil
}
