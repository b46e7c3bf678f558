//go:build linux

package physical

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FFSubscriber receives force-feedback effect updates forwarded from a
// virtual controller's device-API layer. Effect parameter computation is
// out of scope; a subscriber only needs to accept raw updates.
type FFSubscriber interface {
	SubmitEffectUpdate(payload []byte) error
}

// Poller owns a background sampler for one physical slot and publishes
// its most recent raw state without ever blocking a reader.
type Poller struct {
	slot int

	mu       sync.Mutex
	current  State
	changeCh chan struct{}

	ffMu sync.Mutex
	ffSub FFSubscriber

	stop context.CancelFunc
	done chan struct{}
}

var (
	registryMu sync.Mutex
	registry   = map[int]*Poller{}
)

// Get returns the poller for slot, starting its sampler goroutine on
// first demand and keeping it alive for the remaining process lifetime.
func Get(slot int) (*Poller, error) {
	var (
		p  *Poller
		ok bool
	)

	if slot < 0 || slot >= SlotCount {
		return nil, fmt.Errorf("physical.Get: slot %d out of range", slot)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	p, ok = registry[slot]
	if ok {
		return p, nil
	}

	p = newPoller(slot)
	registry[slot] = p

	return p, nil
}

func newPoller(slot int) *Poller {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		p      *Poller
	)

	ctx, cancel = context.WithCancel(context.Background())

	p = &Poller{
		slot:     slot,
		changeCh: make(chan struct{}),
		stop:     cancel,
		done:     make(chan struct{}),
	}

	go p.sample(ctx)

	return p
}

// Current returns the most recent raw state for this slot without
// blocking. A disconnected slot reads back as the neutral zero state.
func (p *Poller) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current
}

// WaitForChange blocks until a raw state different from last is observed
// or ctx is cancelled, in which case ctx.Err() is returned.
func (p *Poller) WaitForChange(ctx context.Context, last State) (State, error) {
	for {
		p.mu.Lock()
		cur := p.current
		ch := p.changeCh
		p.mu.Unlock()

		if cur != last {
			return cur, nil
		}

		select {
		case <-ch:
			continue
		case <-ctx.Done():
			return State{}, ctx.Err()
		}
	}
}

// RegisterFF claims exclusive force-feedback access for this slot. Only
// one subscriber may hold the registration at a time.
func (p *Poller) RegisterFF(sub FFSubscriber) error {
	p.ffMu.Lock()
	defer p.ffMu.Unlock()

	if p.ffSub != nil {
		return ErrAlreadyTaken
	}

	p.ffSub = sub

	return nil
}

// UnregisterFF releases a force-feedback registration. Idempotent.
func (p *Poller) UnregisterFF(sub FFSubscriber) {
	p.ffMu.Lock()
	defer p.ffMu.Unlock()

	if p.ffSub == sub {
		p.ffSub = nil
	}
}

// ForwardEffectUpdate routes a force-feedback effect update to whichever
// subscriber currently holds this slot's registration, if any.
func (p *Poller) ForwardEffectUpdate(payload []byte) error {
	p.ffMu.Lock()
	sub := p.ffSub
	p.ffMu.Unlock()

	if sub == nil {
		return nil
	}

	return sub.SubmitEffectUpdate(payload)
}

func (p *Poller) setState(s State) {
	p.mu.Lock()
	if s == p.current {
		p.mu.Unlock()
		return
	}

	p.current = s
	oldCh := p.changeCh
	p.changeCh = make(chan struct{})
	p.mu.Unlock()

	close(oldCh)
}

// sample is the sampler goroutine's entry point: it finds this slot's
// evdev node (if any), decodes the raw event stream into State updates,
// and retries discovery while the slot is disconnected.
func (p *Poller) sample(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		node, err := findGamepadNode(p.slot)
		if err != nil || node == nil {
			p.setState(Neutral)

			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				continue
			}
		}

		p.drain(ctx, node)
	}
}

// drain reads events from node until it errors out (device unplugged) or
// ctx is cancelled, incrementally building State from EV_ABS/EV_KEY
// events and publishing on EV_SYN.
func (p *Poller) drain(ctx context.Context, node *evdevNode) {
	defer node.close()

	state := p.Current()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev, err := node.readEvent()
		if err != nil {
			p.setState(Neutral)
			return
		}

		switch ev.Type {
		case evAbs:
			state = applyAbs(state, ev.Code, ev.Value)
		case evKey:
			state = applyKey(state, ev.Code, ev.Value != 0)
		case evSyn:
			p.setState(state)
		}
	}
}

func applyAbs(s State, code uint16, value int32) State {
	switch code {
	case absX:
		s.LX = int16(value)
	case absY:
		s.LY = int16(value)
	case absRX:
		s.RX = int16(value)
	case absRY:
		s.RY = int16(value)
	case absZ:
		s.LT = uint8(value)
	case absRZ:
		s.RT = uint8(value)
	case absHat0X:
		s.HatX = int8(value)
	case absHat0Y:
		s.HatY = int8(value)
	}

	return s
}

func applyKey(s State, code uint16, pressed bool) State {
	switch code {
	case btnSouth:
		s = s.WithButton(ButtonA, pressed)
	case btnEast:
		s = s.WithButton(ButtonB, pressed)
	case btnNorth:
		s = s.WithButton(ButtonX, pressed)
	case btnWest:
		s = s.WithButton(ButtonY, pressed)
	case btnTL:
		s = s.WithButton(ButtonLB, pressed)
	case btnTR:
		s = s.WithButton(ButtonRB, pressed)
	case btnSelect:
		s = s.WithButton(ButtonBack, pressed)
	case btnStart:
		s = s.WithButton(ButtonStart, pressed)
	case btnThumbL:
		s = s.WithButton(ButtonLS, pressed)
	case btnThumbR:
		s = s.WithButton(ButtonRS, pressed)
	}

	return s
}

// findGamepadNode returns the nth evdev node (in glob order) that looks
// like a gamepad, or nil if fewer than slot+1 such devices are attached.
func findGamepadNode(slot int) (*evdevNode, error) {
	var (
		paths []string
		err   error
		seen  int
	)

	paths, err = evdevNodes()
	if err != nil {
		return nil, fmt.Errorf("physical.findGamepadNode: %w", err)
	}

	for _, path := range paths {
		node, err := openEvdevNode(path)
		if err != nil {
			continue
		}

		ok, err := node.isGamepad()
		if err != nil || !ok {
			node.close()
			continue
		}

		if seen == slot {
			return node, nil
		}

		seen++
		node.close()
	}

	return nil, nil
}
