// Package deviceapi implements the per-instance device object: data
// format binding, acquisition gating, state/event retrieval, and the
// property whitelist.
package deviceapi

import (
	"sync"

	"github.com/xidi-go/xidi/internal/dataformat"
	"github.com/xidi-go/xidi/internal/elementmap"
	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/physical"
	"github.com/xidi-go/xidi/internal/virtualctrl"
)

// Result is the small fixed vocabulary every operation returns across
// the device-API boundary.
type Result int

const (
	ResultOK Result = iota
	ResultInvalidParam
	ResultNotInitialized
	ResultNotAcquired
	ResultBufferOverflow
	ResultUnsupported
	ResultNotRegistered
	ResultAlreadyTaken
	ResultFail
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultInvalidParam:
		return "invalid_param"
	case ResultNotInitialized:
		return "not_initialized"
	case ResultNotAcquired:
		return "not_acquired"
	case ResultBufferOverflow:
		return "buffer_overflow"
	case ResultUnsupported:
		return "unsupported"
	case ResultNotRegistered:
		return "not_registered"
	case ResultAlreadyTaken:
		return "already_taken"
	default:
		return "fail"
	}
}

// PropertyGUID names one of the whitelisted per-axis or per-device
// properties a game may set or get.
type PropertyGUID int

const (
	PropertyRange PropertyGUID = iota
	PropertyDeadzone
	PropertySaturation
	PropertyGain
	PropertyBufferSize
	PropertyAutoCenter
	PropertyCalibrationMode
	PropertyInstanceName
)

// PropertyHeader carries a property request's target (a specific axis,
// or the whole device) and its value payload, mirroring the legacy
// contract's "header + payload" property call shape.
type PropertyHeader struct {
	Axis        elementmap.Axis
	HasAxis     bool
	Range       [2]int32
	Percent     int32 // deadzone/saturation/gain, basis points
	BufferSize  int
	AutoCenter  bool
	Instance    string
}

// Device wraps one virtual controller plus its compiled data-format
// plan. The zero value is not usable; construct with New.
type Device struct {
	ctrl *virtualctrl.Controller
	name string

	mu       sync.Mutex
	plan     *dataformat.Plan
	acquired bool
}

// New binds a Device to an already-running virtual controller.
func New(ctrl *virtualctrl.Controller, name string) *Device {
	return &Device{ctrl: ctrl, name: name}
}

// SetDataFormat compiles requests into this device's active Plan. Fails
// if the device is currently acquired.
func (d *Device) SetDataFormat(caps mapper.Capabilities, size int, requests []dataformat.ObjectRequest) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.acquired {
		return ResultInvalidParam
	}

	plan, err := dataformat.Compile(caps, size, requests)
	if err != nil {
		return ResultInvalidParam
	}

	d.plan = plan

	return ResultOK
}

// Acquire marks the device ready for state/event retrieval.
func (d *Device) Acquire() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.plan == nil {
		return ResultNotInitialized
	}

	d.acquired = true

	return ResultOK
}

// Unacquire releases the device; subsequent get_state/get_device_data
// calls fail until Acquire is called again.
func (d *Device) Unacquire() Result {
	d.mu.Lock()
	d.acquired = false
	d.mu.Unlock()

	return ResultOK
}

// Poll hints the controller to refresh. The sampler is always running,
// so this is a no-op that always succeeds.
func (d *Device) Poll() Result {
	return ResultOK
}

// GetState writes the current processed state into buf via the active
// Plan.
func (d *Device) GetState(buf []byte) Result {
	d.mu.Lock()
	plan, acquired := d.plan, d.acquired
	d.mu.Unlock()

	if !acquired {
		return ResultNotAcquired
	}

	if err := plan.Write(buf, d.ctrl.CurrentState()); err != nil {
		return ResultInvalidParam
	}

	return ResultOK
}

// GetDeviceData dequeues up to max buffered events, translates them
// through the active Plan, and reports whether the overflow flag was
// set. peek leaves the events queued.
func (d *Device) GetDeviceData(max int, peek bool) ([]dataformat.ObjectData, Result) {
	d.mu.Lock()
	plan, acquired := d.plan, d.acquired
	d.mu.Unlock()

	if !acquired {
		return nil, ResultNotAcquired
	}

	var (
		events    []virtualctrl.Event
		overflow  bool
	)

	if peek {
		events = d.ctrl.PeekEvents(max)
	} else {
		events, overflow = d.ctrl.DequeueEvents(max)
	}

	data := plan.TranslateEvents(events)

	if overflow {
		return data, ResultBufferOverflow
	}

	return data, ResultOK
}

// SetProperty applies one whitelisted property.
func (d *Device) SetProperty(prop PropertyGUID, header PropertyHeader) Result {
	switch prop {
	case PropertyRange:
		p := d.ctrl.AxisProperty(header.Axis)
		p.RangeMin, p.RangeMax = header.Range[0], header.Range[1]
		d.ctrl.SetAxisProperty(header.Axis, p)

	case PropertyDeadzone:
		p := d.ctrl.AxisProperty(header.Axis)
		p.DeadzonePct = header.Percent
		d.ctrl.SetAxisProperty(header.Axis, p)

	case PropertySaturation:
		p := d.ctrl.AxisProperty(header.Axis)
		p.SaturationPct = header.Percent
		d.ctrl.SetAxisProperty(header.Axis, p)

	case PropertyGain:
		p := d.ctrl.AxisProperty(header.Axis)
		p.Gain = header.Percent
		d.ctrl.SetAxisProperty(header.Axis, p)

	case PropertyBufferSize:
		d.ctrl.SetEventBufferSize(header.BufferSize)

	case PropertyAutoCenter:
		// Accepted-but-ignored unconditionally (documented decision).

	case PropertyCalibrationMode:
		// Only passthrough is supported; nothing to configure.

	case PropertyInstanceName:
		return ResultUnsupported // read-only

	default:
		return ResultUnsupported
	}

	return ResultOK
}

// GetProperty reads one whitelisted property.
func (d *Device) GetProperty(prop PropertyGUID, axis elementmap.Axis) (PropertyHeader, Result) {
	switch prop {
	case PropertyRange:
		p := d.ctrl.AxisProperty(axis)
		return PropertyHeader{Axis: axis, HasAxis: true, Range: [2]int32{p.RangeMin, p.RangeMax}}, ResultOK

	case PropertyDeadzone:
		p := d.ctrl.AxisProperty(axis)
		return PropertyHeader{Axis: axis, HasAxis: true, Percent: p.DeadzonePct}, ResultOK

	case PropertySaturation:
		p := d.ctrl.AxisProperty(axis)
		return PropertyHeader{Axis: axis, HasAxis: true, Percent: p.SaturationPct}, ResultOK

	case PropertyGain:
		p := d.ctrl.AxisProperty(axis)
		return PropertyHeader{Axis: axis, HasAxis: true, Percent: p.Gain}, ResultOK

	case PropertyInstanceName:
		return PropertyHeader{Instance: d.name}, ResultOK

	default:
		return PropertyHeader{}, ResultUnsupported
	}
}

// EnumCallback is invoked once per bound element during EnumObjects, in
// canonical order. Returning false stops enumeration early.
type EnumCallback func(elementmap.ElementKind, elementmap.Axis, int) bool

// EnumObjects walks caps' elements in canonical order — axes, then
// buttons, then POV — invoking cb for each until it returns false.
func (d *Device) EnumObjects(caps mapper.Capabilities, cb EnumCallback) Result {
	for _, a := range caps.SortedAxes() {
		if !cb(elementmap.KindAxis, a, 0) {
			return ResultOK
		}
	}

	for b := 1; b <= caps.ButtonMax; b++ {
		if !cb(elementmap.KindButton, 0, b) {
			return ResultOK
		}
	}

	if caps.HasPov {
		cb(elementmap.KindPov, 0, 0)
	}

	return ResultOK
}

// SetEventNotification returns the controller's current notification
// channel, which the sampler closes on the next processed-state change.
// Nothing is stored on the Device; the channel is replaced on every
// signal, so callers fetch it again after each wake.
func (d *Device) SetEventNotification() <-chan struct{} {
	return d.ctrl.NotifyChannel()
}

// SetCooperativeLevel is accepted for compatibility; the virtual
// controller has no window ownership to arbitrate.
func (d *Device) SetCooperativeLevel() Result {
	return ResultOK
}

// RegisterFF forwards force-feedback registration to the underlying
// physical slot.
func (d *Device) RegisterFF(sub physical.FFSubscriber) Result {
	if err := d.ctrl.RegisterFF(sub); err != nil {
		return ResultAlreadyTaken
	}

	return ResultOK
}

// UnregisterFF releases this device's force-feedback registration, if
// any. It runs only when called explicitly; neither Device nor
// virtualctrl.Controller.Close calls it.
func (d *Device) UnregisterFF(sub physical.FFSubscriber) {
	d.ctrl.UnregisterFF(sub)
}

// SubmitForceFeedback routes one effect-update payload through the
// arbitrator to whichever subscriber currently holds this device's
// force-feedback registration.
func (d *Device) SubmitForceFeedback(payload []byte) Result {
	if err := d.ctrl.SubmitForceFeedback(payload); err != nil {
		return ResultNotRegistered
	}

	return ResultOK
}
