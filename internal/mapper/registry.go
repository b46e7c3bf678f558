package mapper

import "github.com/xidi-go/xidi/internal/elementmap"

// Registry is a name-keyed set of ready-to-use mapper definitions,
// looked up by the config's Mapper/Type setting.
type Registry map[string]*Definition

// Builtin returns the mapper definitions shipped with Xidi: the
// standard layout and the shared-trigger-axis layout used
// by some XInput-era games.
func Builtin() Registry {
	return Registry{
		"StandardGamepad":      standardGamepad(),
		"XInputSharedTriggers": xinputSharedTriggers(),
	}
}

// standardGamepad binds left stick to X/Y, right stick to Z/RotZ, dpad
// to POV, the two triggers to buttons 7 and 8, the four face buttons
// plus two shoulder buttons to buttons 1-6, back/start to 9/10, and the
// two clickable sticks to 11/12.
func standardGamepad() *Definition {
	return New("StandardGamepad", Definition{
		StickLeftX:  elementmap.AxisMapper{Target: elementmap.X, Direction: elementmap.Both},
		StickLeftY:  elementmap.AxisMapper{Target: elementmap.Y, Direction: elementmap.Both},
		StickRightX: elementmap.AxisMapper{Target: elementmap.Z, Direction: elementmap.Both},
		StickRightY: elementmap.AxisMapper{Target: elementmap.RotZ, Direction: elementmap.Both},

		DpadUp:    elementmap.PovMapper{Target: elementmap.PovUp},
		DpadDown:  elementmap.PovMapper{Target: elementmap.PovDown},
		DpadLeft:  elementmap.PovMapper{Target: elementmap.PovLeft},
		DpadRight: elementmap.PovMapper{Target: elementmap.PovRight},

		TriggerLT: elementmap.ButtonMapper{Target: 7},
		TriggerRT: elementmap.ButtonMapper{Target: 8},

		ButtonA:  elementmap.ButtonMapper{Target: 1},
		ButtonB:  elementmap.ButtonMapper{Target: 2},
		ButtonX:  elementmap.ButtonMapper{Target: 3},
		ButtonY:  elementmap.ButtonMapper{Target: 4},
		ButtonLB: elementmap.ButtonMapper{Target: 5},
		ButtonRB: elementmap.ButtonMapper{Target: 6},

		ButtonBack:  elementmap.ButtonMapper{Target: 9},
		ButtonStart: elementmap.ButtonMapper{Target: 10},
		ButtonLS:    elementmap.ButtonMapper{Target: 11},
		ButtonRS:    elementmap.ButtonMapper{Target: 12},
	})
}

// xinputSharedTriggers maps both triggers onto a single shared Z axis,
// LT pushing positive and RT pushing negative, so games that expect a
// single combined trigger axis see the XInput-native behavior.
func xinputSharedTriggers() *Definition {
	return New("XInputSharedTriggers", Definition{
		StickLeftX:  elementmap.AxisMapper{Target: elementmap.X, Direction: elementmap.Both},
		StickLeftY:  elementmap.AxisMapper{Target: elementmap.Y, Direction: elementmap.Both},
		StickRightX: elementmap.AxisMapper{Target: elementmap.RotX, Direction: elementmap.Both},
		StickRightY: elementmap.AxisMapper{Target: elementmap.RotY, Direction: elementmap.Both},

		TriggerLT: elementmap.AxisMapper{Target: elementmap.Z, Direction: elementmap.Positive},
		TriggerRT: elementmap.AxisMapper{Target: elementmap.Z, Direction: elementmap.Negative},

		ButtonA:  elementmap.ButtonMapper{Target: 1},
		ButtonB:  elementmap.ButtonMapper{Target: 2},
		ButtonX:  elementmap.ButtonMapper{Target: 3},
		ButtonY:  elementmap.ButtonMapper{Target: 4},
		ButtonLB: elementmap.ButtonMapper{Target: 5},
		ButtonRB: elementmap.ButtonMapper{Target: 6},

		ButtonBack:  elementmap.ButtonMapper{Target: 7},
		ButtonStart: elementmap.ButtonMapper{Target: 8},
		ButtonLS:    elementmap.ButtonMapper{Target: 9},
		ButtonRS:    elementmap.ButtonMapper{Target: 10},

		DpadUp:    elementmap.PovMapper{Target: elementmap.PovUp},
		DpadDown:  elementmap.PovMapper{Target: elementmap.PovDown},
		DpadLeft:  elementmap.PovMapper{Target: elementmap.PovLeft},
		DpadRight: elementmap.PovMapper{Target: elementmap.PovRight},
	})
}
