package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xidi-go/xidi/internal/elementmap"
)

func writeBlueprint(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "blueprint.yaml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	return path
}

func TestLoadCustomBindsButtonsAxesAndPov(t *testing.T) {
	path := writeBlueprint(t, `
name: TestPad
buttons:
  a: 1
  start: 10
axes:
  stickLeftX:
    axis: X
    direction: both
pov:
  dpadUp: up
`)

	def, err := LoadCustom(path)
	if err != nil {
		t.Fatalf("LoadCustom: %v", err)
	}

	if def.Name != "TestPad" {
		t.Errorf("Name = %q, want TestPad", def.Name)
	}

	axis, ok := def.StickLeftX.(elementmap.AxisMapper)
	if !ok || axis.Target != elementmap.X {
		t.Errorf("StickLeftX = %#v, want AxisMapper{Target: X}", def.StickLeftX)
	}

	if def.ButtonA == nil || def.ButtonStart == nil {
		t.Error("ButtonA/ButtonStart should be bound")
	}

	if def.DpadUp == nil {
		t.Error("DpadUp should be bound")
	}
}

func TestLoadCustomRejectsUnknownAxis(t *testing.T) {
	path := writeBlueprint(t, "name: Bad\naxes:\n  stickLeftX:\n    axis: Bogus\n")

	if _, err := LoadCustom(path); err == nil {
		t.Error("expected error for unknown axis name")
	}
}

func TestLoadCustomRejectsUnknownSlot(t *testing.T) {
	path := writeBlueprint(t, "name: Bad\nbuttons:\n  nosuchbutton: 1\n")

	if _, err := LoadCustom(path); err == nil {
		t.Error("expected error for unknown button slot")
	}
}

func TestLoadCustomBuildsSplitMapper(t *testing.T) {
	path := writeBlueprint(t, `
name: SplitPad
axes:
  triggerLT:
    split:
      negative:
        axis: Z
        direction: negative
      positive:
        axis: Z
        direction: positive
`)

	def, err := LoadCustom(path)
	if err != nil {
		t.Fatalf("LoadCustom: %v", err)
	}

	split, ok := def.TriggerLT.(elementmap.SplitMapper)
	if !ok {
		t.Fatalf("TriggerLT = %#v, want SplitMapper", def.TriggerLT)
	}

	if _, ok := split.NegativeInner.(elementmap.AxisMapper); !ok {
		t.Errorf("NegativeInner = %#v, want AxisMapper", split.NegativeInner)
	}
}

func TestLoadCustomBuildsCompoundMapper(t *testing.T) {
	path := writeBlueprint(t, `
name: CompoundPad
axes:
  stickLeftX:
    compound:
      - axis: X
        direction: both
      - axis: X
        direction: both
        invert: true
`)

	def, err := LoadCustom(path)
	if err != nil {
		t.Fatalf("LoadCustom: %v", err)
	}

	compound, ok := def.StickLeftX.(elementmap.CompoundMapper)
	if !ok {
		t.Fatalf("StickLeftX = %#v, want CompoundMapper", def.StickLeftX)
	}

	if len(compound.Inner) != 2 {
		t.Fatalf("len(Inner) = %d, want 2", len(compound.Inner))
	}
}

func TestLoadCustomRejectsBadNestedAxis(t *testing.T) {
	path := writeBlueprint(t, `
name: Bad
axes:
  triggerLT:
    split:
      negative:
        axis: Bogus
      positive:
        axis: Z
`)

	if _, err := LoadCustom(path); err == nil {
		t.Error("expected error for unknown nested axis name")
	}
}
