package virtualctrl

import "testing"

func TestEventBufferFIFOOrder(t *testing.T) {
	b := NewEventBuffer(4)

	for i := int32(0); i < 3; i++ {
		b.Append(Event{ValueKind: ValueAxis, AxisValue: i})
	}

	events, overflow := b.Dequeue(10)
	if overflow {
		t.Error("unexpected overflow")
	}

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}

	for i, e := range events {
		if e.AxisValue != int32(i) {
			t.Errorf("events[%d].AxisValue = %d, want %d", i, e.AxisValue, i)
		}
	}
}

func TestEventBufferOverflowOverwritesOldest(t *testing.T) {
	b := NewEventBuffer(2)

	b.Append(Event{AxisValue: 1})
	b.Append(Event{AxisValue: 2})
	b.Append(Event{AxisValue: 3})

	events, overflow := b.Dequeue(10)
	if !overflow {
		t.Error("expected overflow flag set")
	}

	if len(events) != 2 || events[0].AxisValue != 2 || events[1].AxisValue != 3 {
		t.Fatalf("events = %+v, want [2 3]", events)
	}

	_, overflow = b.Dequeue(10)
	if overflow {
		t.Error("overflow flag should clear after a dequeue")
	}
}

func TestEventBufferPeekDoesNotRemove(t *testing.T) {
	b := NewEventBuffer(4)
	b.Append(Event{AxisValue: 7})

	peeked := b.Peek(10)
	if len(peeked) != 1 {
		t.Fatalf("len(peeked) = %d, want 1", len(peeked))
	}

	dequeued, _ := b.Dequeue(10)
	if len(dequeued) != 1 {
		t.Fatalf("len(dequeued) = %d, want 1", len(dequeued))
	}
}

func TestEventBufferZeroCapacityIsNoop(t *testing.T) {
	b := NewEventBuffer(0)
	b.Append(Event{AxisValue: 1})

	events, overflow := b.Dequeue(10)
	if len(events) != 0 || overflow {
		t.Errorf("zero-capacity buffer should never hold events, got %+v overflow=%v", events, overflow)
	}
}
