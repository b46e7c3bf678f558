package virtualctrl

import (
	"time"

	"github.com/xidi-go/xidi/internal/elementmap"
)

// EventValueKind distinguishes which union member of Event.Value is live.
type EventValueKind int

const (
	ValueAxis EventValueKind = iota
	ValueButton
	ValuePov
)

// Event is one per-element change record appended to a Controller's
// event buffer.
type Event struct {
	ElementKind elementmap.ElementKind
	Axis        elementmap.Axis
	Button      int
	ValueKind   EventValueKind
	AxisValue   int32
	ButtonValue bool
	PovValue    uint32
	TimestampMs uint32
	Sequence    uint32
}

// EventBuffer is a bounded FIFO ring of Events. A full buffer overwrites
// its oldest entry and sets a sticky overflow flag surfaced on the next
// dequeue.
type EventBuffer struct {
	entries  []Event
	capacity int
	head     int // index of oldest entry
	count    int
	overflow bool
	nextSeq  uint32
}

// NewEventBuffer creates a buffer of the given capacity. Capacity 0
// disables buffering (append is a no-op).
func NewEventBuffer(capacity int) *EventBuffer {
	return &EventBuffer{entries: make([]Event, capacity), capacity: capacity}
}

// Capacity returns the buffer's configured size.
func (b *EventBuffer) Capacity() int { return b.capacity }

// Resize changes the buffer's capacity, discarding its current contents.
func (b *EventBuffer) Resize(capacity int) {
	b.entries = make([]Event, capacity)
	b.capacity = capacity
	b.head = 0
	b.count = 0
	b.overflow = false
}

// Append adds one event, assigning it the next monotonically increasing
// sequence number and the current wall-clock millisecond timestamp. If
// the buffer is full, the oldest entry is overwritten and the overflow
// flag is set.
func (b *EventBuffer) Append(e Event) {
	if b.capacity == 0 {
		return
	}

	e.Sequence = b.nextSeq
	b.nextSeq++
	e.TimestampMs = uint32(time.Now().UnixMilli())

	tail := (b.head + b.count) % b.capacity

	if b.count == b.capacity {
		b.entries[b.head] = e
		b.head = (b.head + 1) % b.capacity
		b.overflow = true

		return
	}

	b.entries[tail] = e
	b.count++
}

// Dequeue removes and returns up to max oldest events, in FIFO order,
// and reports whether the overflow flag was set, clearing it if any
// events were returned.
func (b *EventBuffer) Dequeue(max int) ([]Event, bool) {
	out := b.peekLocked(max)

	b.head = (b.head + len(out)) % max1(b.capacity)
	b.count -= len(out)

	overflowed := b.overflow
	if len(out) > 0 {
		b.overflow = false
	}

	return out, overflowed
}

// Peek returns up to max oldest events without removing them.
func (b *EventBuffer) Peek(max int) []Event {
	return b.peekLocked(max)
}

func (b *EventBuffer) peekLocked(max int) []Event {
	n := b.count
	if max >= 0 && max < n {
		n = max
	}

	out := make([]Event, n)

	for i := 0; i < n; i++ {
		out[i] = b.entries[(b.head+i)%max1(b.capacity)]
	}

	return out
}

func max1(v int) int {
	if v == 0 {
		return 1
	}

	return v
}
