package dataformat

import (
	"testing"

	"github.com/xidi-go/xidi/internal/elementmap"
	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/virtualctrl"
)

func standardCaps() mapper.Capabilities {
	return mapper.Builtin()["StandardGamepad"].Capabilities()
}

func TestCompileAssignsNamedAxes(t *testing.T) {
	x, z := elementmap.X, elementmap.Z

	plan, err := Compile(standardCaps(), 8, []ObjectRequest{
		{Offset: 0, Size: 4, Axis: &x},
		{Offset: 4, Size: 4, Axis: &z},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	state := virtualctrl.ProcessedState{Buttons: make([]bool, standardCaps().ButtonMax)}
	state.Axis[elementmap.X] = 1234
	state.Axis[elementmap.Z] = -1

	buf := make([]byte, 8)
	if err := plan.Write(buf, state); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if int32(buf[0])|int32(buf[1])<<8 != 1234 {
		t.Errorf("X bytes = %v, want 1234 little-endian", buf[0:4])
	}
}

func TestCompileRejectsOverlap(t *testing.T) {
	x := elementmap.X

	_, err := Compile(standardCaps(), 8, []ObjectRequest{
		{Offset: 0, Size: 4, Axis: &x},
		{Offset: 2, Size: 4, Kind: elementmap.KindAxis},
	})
	if err == nil {
		t.Fatal("expected overlap error, got nil")
	}
}

func TestCompileRejectsDuplicateClaim(t *testing.T) {
	x := elementmap.X

	_, err := Compile(standardCaps(), 8, []ObjectRequest{
		{Offset: 0, Size: 4, Axis: &x},
		{Offset: 4, Size: 4, Axis: &x},
	})
	if err == nil {
		t.Fatal("expected duplicate-claim error, got nil")
	}
}

func TestCompileAnyAxisTakesNextFree(t *testing.T) {
	x := elementmap.X

	plan, err := Compile(standardCaps(), 8, []ObjectRequest{
		{Offset: 0, Size: 4, Axis: &x},
		{Offset: 4, Size: 4, Kind: elementmap.KindAxis},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if plan.Size() != 8 {
		t.Errorf("Size() = %d, want 8", plan.Size())
	}

	state := virtualctrl.ProcessedState{Buttons: make([]bool, standardCaps().ButtonMax)}
	state.Axis[elementmap.Y] = 77

	buf := make([]byte, 8)
	if err := plan.Write(buf, state); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if buf[4] != 77 {
		t.Errorf("offset 4 = %d, want 77 (Y, the next free axis after X)", buf[4])
	}
}

func TestWriteButtonEncoding(t *testing.T) {
	plan, err := Compile(standardCaps(), 1, []ObjectRequest{
		{Offset: 0, Size: 1, Kind: elementmap.KindButton, Instance: intPtr(0)},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	state := virtualctrl.ProcessedState{Buttons: make([]bool, standardCaps().ButtonMax)}
	state.Buttons[0] = true

	buf := make([]byte, 1)
	if err := plan.Write(buf, state); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if buf[0] != 0x80 {
		t.Errorf("buf[0] = 0x%02x, want 0x80", buf[0])
	}
}

func TestTranslateEventsSkipsUnboundElements(t *testing.T) {
	x := elementmap.X

	plan, err := Compile(standardCaps(), 4, []ObjectRequest{
		{Offset: 0, Size: 4, Axis: &x},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	events := []virtualctrl.Event{
		{ValueKind: virtualctrl.ValueAxis, Axis: elementmap.X, AxisValue: 42, Sequence: 1},
		{ValueKind: virtualctrl.ValueAxis, Axis: elementmap.Y, AxisValue: 7, Sequence: 2},
	}

	out := plan.TranslateEvents(events)
	if len(out) != 1 || out[0].Value != 42 || out[0].Offset != 0 {
		t.Errorf("TranslateEvents = %+v, want one record for X at offset 0", out)
	}
}

func intPtr(v int) *int { return &v }
