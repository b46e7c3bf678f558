// Package rootapi implements the root device-enumeration wrapper: it
// interposes Xidi's virtual controllers in front of (and hides the
// modern-exposed devices from) whatever underlying legacy input API the
// process also links against.
package rootapi

import (
	"fmt"

	"github.com/xidi-go/xidi/internal/deviceapi"
	"github.com/xidi-go/xidi/internal/guidcodec"
	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/physical"
	"github.com/xidi-go/xidi/internal/virtualctrl"
	"github.com/xidi-go/xidi/internal/xlog"
)

// Result mirrors deviceapi.Result; the two packages intentionally share
// the same small vocabulary.
type Result = deviceapi.Result

const (
	ResultOK            = deviceapi.ResultOK
	ResultNotRegistered = deviceapi.ResultNotRegistered
	ResultFail          = deviceapi.ResultFail
)

// LegacyInstance is one device reported by the underlying legacy API.
type LegacyInstance struct {
	InstanceID string
	Name       string
}

// LegacyAPI is the underlying legacy input library Root delegates to for
// every instance identifier that isn't one of Xidi's own. Implementing
// this contract (vtable-compatible COM forwarding to the OS-provided
// library) is out of scope; Root only needs this narrow surface.
type LegacyAPI interface {
	CreateDevice(instanceID string) (any, error)
	EnumDevices(cb func(LegacyInstance) bool)
	GetDeviceStatus(instanceID string) Result
	FindDevice(name string) (string, bool)
}

// ModernDetector reports whether a legacy instance identifier is one the
// modern per-user indexed input API also exposes — the set that must be
// hidden from legacy enumeration once a virtual controller stands in for
// it.
type ModernDetector interface {
	IsModernDevice(instanceID string) bool
}

// Root is the root device-enumeration object.
type Root struct {
	legacy         LegacyAPI
	modern         ModernDetector
	mapperRegistry mapper.Registry
	log            *xlog.Logger
}

// New builds a Root delegating to legacy for everything that isn't one
// of Xidi's virtual controllers, using registry to bind a mapper per
// slot.
func New(legacy LegacyAPI, modern ModernDetector, registry mapper.Registry, log *xlog.Logger) *Root {
	return &Root{legacy: legacy, modern: modern, mapperRegistry: registry, log: log}
}

// CreateDevice implements the three-way dispatch: a virtual-controller
// GUID creates a new controller, a modern-hidden legacy instance is
// refused as not_registered, and everything else is delegated.
// mapperName selects which of r's registered mapper definitions binds
// the new virtual controller; it is ignored for legacy instance
// identifiers.
func (r *Root) CreateDevice(instanceGUID [16]byte, mapperName string) (*deviceapi.Device, any, Result) {
	if index, ok := guidcodec.Decode(instanceGUID); ok {
		def, ok := r.mapperRegistry[mapperName]
		if !ok {
			return nil, nil, ResultFail
		}

		ctrl, err := virtualctrl.NewController(index, def, r.log)
		if err != nil {
			return nil, nil, ResultFail
		}

		return deviceapi.New(ctrl, guidcodec.ProductName(index)), nil, ResultOK
	}

	instanceID := fmt.Sprintf("%x", instanceGUID)
	if r.modern.IsModernDevice(instanceID) {
		return nil, nil, ResultNotRegistered
	}

	legacyHandle, err := r.legacy.CreateDevice(instanceID)
	if err != nil {
		return nil, nil, ResultFail
	}

	return nil, legacyHandle, ResultOK
}

// EnumCallback receives either a virtual-controller index or a legacy
// instance, stopping enumeration early when it returns false.
type EnumCallback func(virtual bool, index int, legacy LegacyInstance) bool

// EnumDevices implements the enumeration ordering protocol: pre-scan to
// compute the hide set H, then interleave virtual controllers and
// surviving legacy devices per the "virtual first iff H non-empty"
// rule.
func (r *Root) EnumDevices(controllerCount int, wantGameControllers bool, cb EnumCallback) {
	var legacyInstances []LegacyInstance

	r.legacy.EnumDevices(func(inst LegacyInstance) bool {
		legacyInstances = append(legacyInstances, inst)
		return true
	})

	hidden := map[string]struct{}{}
	for _, inst := range legacyInstances {
		if r.modern.IsModernDevice(inst.InstanceID) {
			hidden[inst.InstanceID] = struct{}{}
		}
	}

	seen := map[string]struct{}{}

	emitVirtual := func() bool {
		for i := 0; i < controllerCount; i++ {
			key := fmt.Sprintf("xidi-virtual-%d", i)
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			if !cb(true, i, LegacyInstance{}) {
				return false
			}
		}

		return true
	}

	if wantGameControllers && len(hidden) > 0 {
		if !emitVirtual() {
			return
		}
	}

	for _, inst := range legacyInstances {
		if _, isHidden := hidden[inst.InstanceID]; isHidden {
			continue
		}

		if _, dup := seen[inst.InstanceID]; dup {
			continue
		}

		seen[inst.InstanceID] = struct{}{}

		if !cb(false, 0, inst) {
			return
		}
	}

	if wantGameControllers && len(hidden) == 0 {
		emitVirtual()
	}
}

// FindDevice delegates to the legacy object, translating a hidden
// instance to not_registered, mirroring the legacy wrapper's own
// FindDevice forwarding semantics for a by-name lookup.
func (r *Root) FindDevice(name string) (string, Result) {
	instanceID, ok := r.legacy.FindDevice(name)
	if !ok {
		return "", ResultNotRegistered
	}

	if r.modern.IsModernDevice(instanceID) {
		return "", ResultNotRegistered
	}

	return instanceID, ResultOK
}

// GetDeviceStatus reports ok for any Xidi GUID (always connected);
// otherwise delegates to the legacy object.
func (r *Root) GetDeviceStatus(instanceGUID [16]byte) Result {
	if _, ok := guidcodec.Decode(instanceGUID); ok {
		return ResultOK
	}

	instanceID := fmt.Sprintf("%x", instanceGUID)

	return r.legacy.GetDeviceStatus(instanceID)
}
