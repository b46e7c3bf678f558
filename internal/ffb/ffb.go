// Package ffb arbitrates force-feedback effect-update submissions
// between a device-API wrapper and whichever physical slot holds the
// exclusive registration. Effect parameter computation is out of
// scope; this package only forwards raw payloads.
package ffb

import "github.com/xidi-go/xidi/internal/physical"

// Arbitrator forwards effect-update submissions from a device-API
// wrapper to a single physical slot's poller, which enforces the actual
// one-subscriber-at-a-time exclusivity (physical.Poller.RegisterFF).
type Arbitrator struct {
	slot int
}

// New returns an Arbitrator bound to the given physical slot.
func New(slot int) *Arbitrator {
	return &Arbitrator{slot: slot}
}

// Submit forwards one effect-update payload to whichever subscriber
// currently holds this slot's force-feedback registration. A payload
// submitted with no registered subscriber is silently dropped, matching
// physical.Poller.ForwardEffectUpdate's no-subscriber behavior.
func (a *Arbitrator) Submit(payload []byte) error {
	p, err := physical.Get(a.slot)
	if err != nil {
		return err
	}

	return p.ForwardEffectUpdate(payload)
}
