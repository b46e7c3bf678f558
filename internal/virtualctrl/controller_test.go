package virtualctrl

import (
	"context"
	"testing"
	"time"

	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/physical"
)

// fakeSource is a StateSource whose WaitForChange is driven by a channel
// of states pushed from the test.
type fakeSource struct {
	states chan physical.State
	cur    physical.State
}

func newFakeSource() *fakeSource {
	return &fakeSource{states: make(chan physical.State, 8)}
}

func (f *fakeSource) push(s physical.State) { f.states <- s }

func (f *fakeSource) Current() physical.State { return f.cur }

func (f *fakeSource) WaitForChange(ctx context.Context, last physical.State) (physical.State, error) {
	select {
	case s := <-f.states:
		f.cur = s
		return s, nil
	case <-ctx.Done():
		return physical.State{}, ctx.Err()
	}
}

func waitForSignal(t *testing.T, c *Controller, timeout time.Duration) {
	t.Helper()

	select {
	case <-c.NotifyChannel():
	case <-time.After(timeout):
		t.Fatal("timed out waiting for controller signal")
	}
}

func TestControllerEmitsAxisEventOnChange(t *testing.T) {
	def := mapper.Builtin()["StandardGamepad"]
	src := newFakeSource()
	c := NewControllerForTesting(src, def, nil)
	defer c.Close()

	src.push(physical.State{LX: 16384})
	waitForSignal(t, c, time.Second)

	events, overflow := c.DequeueEvents(8)
	if overflow {
		t.Fatal("unexpected overflow")
	}

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}

	if events[0].ValueKind != ValueAxis || events[0].AxisValue != 16384 {
		t.Errorf("event = %+v, want axis X = 16384", events[0])
	}

	st := c.CurrentState()
	if st.Axis[0] != 16384 {
		t.Errorf("CurrentState X = %d, want 16384", st.Axis[0])
	}
}

func TestControllerEmitsButtonEvent(t *testing.T) {
	def := mapper.Builtin()["StandardGamepad"]
	src := newFakeSource()
	c := NewControllerForTesting(src, def, nil)
	defer c.Close()

	s := physical.State{}.WithButton(physical.ButtonA, true)
	src.push(s)
	waitForSignal(t, c, time.Second)

	events, _ := c.DequeueEvents(8)
	if len(events) != 1 || events[0].ValueKind != ValueButton || !events[0].ButtonValue {
		t.Fatalf("events = %+v, want one pressed button event", events)
	}
}

func TestControllerOverflowFlag(t *testing.T) {
	def := mapper.Builtin()["StandardGamepad"]
	src := newFakeSource()
	c := NewControllerForTesting(src, def, nil)
	defer c.Close()

	c.SetEventBufferSize(2)

	for _, lx := range []int16{1000, 2000, 3000, 4000} {
		src.push(physical.State{LX: lx})
		waitForSignal(t, c, time.Second)
	}

	_, overflow := c.DequeueEvents(8)
	if !overflow {
		t.Error("expected overflow flag after exceeding buffer capacity")
	}
}

func TestControllerAxisPropertyDeadzone(t *testing.T) {
	def := mapper.Builtin()["StandardGamepad"]
	src := newFakeSource()
	c := NewControllerForTesting(src, def, nil)
	defer c.Close()

	p := DefaultAxisProperties()
	p.DeadzonePct = 5000
	c.SetAxisProperty(0, p)

	// X stays inside the deadzone and so does not change; pressing A in the
	// same sample gives the sampler a change to signal once it has run.
	src.push(physical.State{LX: 100}.WithButton(physical.ButtonA, true))
	waitForSignal(t, c, time.Second)

	st := c.CurrentState()
	want := DefaultAxisProperties().rangeNeutral()
	if st.Axis[0] != want {
		t.Errorf("X = %d, want %d (range neutral, inside deadzone)", st.Axis[0], want)
	}
}
