package mapper

import (
	"testing"

	"github.com/xidi-go/xidi/internal/physical"
	"github.com/xidi-go/xidi/internal/xinput"
)

func TestStandardGamepadMapsSticksTriggerAndButtons(t *testing.T) {
	def := Builtin()["StandardGamepad"]

	state := physical.State{LX: 16384, LY: -16384, RT: 255}
	state = state.WithButton(physical.ButtonA, true)
	state = state.WithButton(physical.ButtonStart, true)

	out := def.Map(xinput.FromState(state))

	if out.Axis[0] != 16384 {
		t.Errorf("X = %d, want 16384", out.Axis[0])
	}

	if out.Axis[1] != -16384 {
		t.Errorf("Y = %d, want -16384", out.Axis[1])
	}

	if out.Axis[2] != 0 || out.Axis[5] != 0 {
		t.Errorf("Z/RotZ should be 0, got %d/%d", out.Axis[2], out.Axis[5])
	}

	if out.ResolvePov() != 0 {
		t.Errorf("POV should be centered, got %v", out.ResolvePov())
	}

	want := map[int]bool{1: true, 8: true, 10: true}
	for i, pressed := range out.Buttons {
		button := i + 1
		if pressed != want[button] {
			t.Errorf("button[%d] = %v, want %v", button, pressed, want[button])
		}
	}
}
