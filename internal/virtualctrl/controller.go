package virtualctrl

import (
	"context"
	"fmt"
	"sync"

	"github.com/xidi-go/xidi/internal/elementmap"
	"github.com/xidi-go/xidi/internal/ffb"
	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/physical"
	"github.com/xidi-go/xidi/internal/xinput"
	"github.com/xidi-go/xidi/internal/xlog"
)

// DefaultEventBufferSize is the event buffer capacity a freshly created
// Controller starts with.
const DefaultEventBufferSize = 32

// Controller is one virtual controller's runtime: it owns a sampler
// goroutine that pulls raw state from its physical slot, runs it through
// a mapper.Definition and per-axis AxisProperties, and publishes the
// result as both a polled snapshot and a queue of change events.
type Controller struct {
	slot int
	def  *mapper.Definition
	log  *xlog.Logger
	arb  *ffb.Arbitrator

	mu        sync.Mutex
	axisProps [elementmap.AxisCount]AxisProperties
	processed processedState
	primed    bool
	events    *EventBuffer
	notifyCh  chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ProcessedState is a controller's last published post-property
// snapshot: the value dataformat.Plan.Write and the device-API layer's
// get_state read.
type ProcessedState struct {
	Axis    [elementmap.AxisCount]int32
	Buttons []bool
	Pov     elementmap.PovDir
}

// processedState is an alias kept for the sampler's internal diffing so
// its field names stay terse at the call sites below.
type processedState = ProcessedState

// NewController starts a Controller bound to physical slot and mapped
// through def. The sampler goroutine runs until Close is called.
func NewController(slot int, def *mapper.Definition, log *xlog.Logger) (*Controller, error) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		c      *Controller
	)

	if slot < 0 || slot >= physical.SlotCount {
		return nil, fmt.Errorf("virtualctrl.NewController: slot %d out of range", slot)
	}

	ctx, cancel = context.WithCancel(context.Background())

	c = &Controller{
		slot:     slot,
		def:      def,
		log:      log,
		arb:      ffb.New(slot),
		events:   NewEventBuffer(DefaultEventBufferSize),
		notifyCh: make(chan struct{}),
		cancel:   cancel,
	}

	for a := range c.axisProps {
		c.axisProps[a] = DefaultAxisProperties()
	}

	c.processed.Buttons = make([]bool, def.Capabilities().ButtonMax)

	p, err := physical.Get(slot)
	if err != nil {
		cancel()
		return nil, err
	}

	c.wg.Add(1)

	go c.sampleLoop(ctx, p)

	return c, nil
}

// StateSource is the subset of physical.Poller the sampler consumes,
// exported so tests in this and other packages can feed synthetic raw
// state without a real evdev device attached.
type StateSource interface {
	Current() physical.State
	WaitForChange(ctx context.Context, last physical.State) (physical.State, error)
}

// NewControllerForTesting builds a Controller against an arbitrary
// StateSource, bypassing physical.Get. Exported for use by this
// package's and other packages' tests; production code always goes
// through NewController.
func NewControllerForTesting(source StateSource, def *mapper.Definition, log *xlog.Logger) *Controller {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		c      *Controller
	)

	ctx, cancel = context.WithCancel(context.Background())

	c = &Controller{
		slot:     -1,
		def:      def,
		log:      log,
		arb:      ffb.New(-1),
		events:   NewEventBuffer(DefaultEventBufferSize),
		notifyCh: make(chan struct{}),
		cancel:   cancel,
	}

	for a := range c.axisProps {
		c.axisProps[a] = DefaultAxisProperties()
	}

	c.processed.Buttons = make([]bool, def.Capabilities().ButtonMax)

	c.wg.Add(1)

	go c.sampleLoop(ctx, source)

	return c
}

// Close stops the sampler goroutine and waits for it to exit. It does
// not release the underlying physical.Poller, which is process-lifetime
// and shared across controllers that happen to target the same slot.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

// CurrentState returns a copy of the most recently processed snapshot.
func (c *Controller) CurrentState() ProcessedState {
	c.mu.Lock()
	defer c.mu.Unlock()

	buttons := make([]bool, len(c.processed.Buttons))
	copy(buttons, c.processed.Buttons)

	return ProcessedState{Axis: c.processed.Axis, Buttons: buttons, Pov: c.processed.Pov}
}

// AxisProperty returns axis a's current properties.
func (c *Controller) AxisProperty(a elementmap.Axis) AxisProperties {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.axisProps[a]
}

// SetAxisProperty replaces axis a's properties, recomputing its cached
// cutoffs.
func (c *Controller) SetAxisProperty(a elementmap.Axis, p AxisProperties) {
	p.recompute()

	c.mu.Lock()
	c.axisProps[a] = p
	c.mu.Unlock()
}

// SetEventBufferSize resizes the controller's event queue, discarding
// whatever it currently holds.
func (c *Controller) SetEventBufferSize(capacity int) {
	c.mu.Lock()
	c.events.Resize(capacity)
	c.mu.Unlock()
}

// DequeueEvents removes and returns up to max queued events along with
// whether the overflow flag was set since the last dequeue.
func (c *Controller) DequeueEvents(max int) ([]Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.events.Dequeue(max)
}

// PeekEvents returns up to max queued events without removing them.
func (c *Controller) PeekEvents(max int) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.events.Peek(max)
}

// NotifyChannel returns a channel that is closed whenever new events are
// queued. The channel is replaced on every signal, mirroring the
// physical poller's change-broadcast primitive; callers must re-fetch it
// after each wake.
func (c *Controller) NotifyChannel() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.notifyCh
}

func (c *Controller) signal() {
	old := c.notifyCh
	c.notifyCh = make(chan struct{})
	close(old)
}

// RegisterFF claims exclusive force-feedback access on this controller's
// physical slot.
func (c *Controller) RegisterFF(sub physical.FFSubscriber) error {
	p, err := physical.Get(c.slot)
	if err != nil {
		return err
	}

	return p.RegisterFF(sub)
}

// UnregisterFF releases a force-feedback registration on this
// controller's physical slot.
func (c *Controller) UnregisterFF(sub physical.FFSubscriber) {
	p, err := physical.Get(c.slot)
	if err != nil {
		return
	}

	p.UnregisterFF(sub)
}

// SubmitForceFeedback forwards one effect-update payload through this
// controller's Arbitrator to whichever subscriber holds the
// registration on its physical slot.
func (c *Controller) SubmitForceFeedback(payload []byte) error {
	return c.arb.Submit(payload)
}

// sampleLoop waits for raw state changes on the bound physical slot, runs
// each change through the mapping and property pipeline, and emits
// events for whatever actually changed in the processed snapshot.
func (c *Controller) sampleLoop(ctx context.Context, source StateSource) {
	defer c.wg.Done()

	last := source.Current()
	c.applySample(last)

	for {
		next, err := source.WaitForChange(ctx, last)
		if err != nil {
			return
		}

		last = next
		c.applySample(last)
	}
}

// applySample runs one raw state through the mapping and property
// pipeline and diffs the result against the last published snapshot,
// appending one event per changed element.
func (c *Controller) applySample(raw physical.State) {
	var (
		mapped  elementmap.State
		changed bool
	)

	mapped = c.def.Map(xinput.FromState(raw))

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.primed {
		c.primed = true

		for _, a := range c.def.Capabilities().SortedAxes() {
			c.processed.Axis[a] = c.axisProps[a].Transform(mapped.Axis[a])
		}

		copy(c.processed.Buttons, mapped.Buttons)

		if c.def.Capabilities().HasPov {
			c.processed.Pov = mapped.ResolvePov()
		}

		return
	}

	for _, a := range c.def.Capabilities().SortedAxes() {
		transformed := c.axisProps[a].Transform(mapped.Axis[a])
		if transformed != c.processed.Axis[a] {
			c.processed.Axis[a] = transformed
			c.events.Append(Event{
				ElementKind: elementmap.KindAxis,
				Axis:        a,
				ValueKind:   ValueAxis,
				AxisValue:   transformed,
			})
			changed = true
		}
	}

	for i := range c.processed.Buttons {
		pressed := mapped.Buttons[i]
		if pressed != c.processed.Buttons[i] {
			c.processed.Buttons[i] = pressed
			c.events.Append(Event{
				ElementKind: elementmap.KindButton,
				Button:      i + 1,
				ValueKind:   ValueButton,
				ButtonValue: pressed,
			})
			changed = true
		}
	}

	if c.def.Capabilities().HasPov {
		pov := mapped.ResolvePov()
		if pov != c.processed.Pov {
			c.processed.Pov = pov
			c.events.Append(Event{
				ElementKind: elementmap.KindPov,
				ValueKind:   ValuePov,
				PovValue:    uint32(pov),
			})
			changed = true
		}
	}

	if changed {
		c.signal()
	}
}
