package physical

import "errors"

// ErrAlreadyTaken is returned by RegisterFF when another subscriber
// already holds the force-feedback registration for a slot.
var ErrAlreadyTaken = errors.New("physical: force-feedback slot already registered")
