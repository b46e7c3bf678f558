package rootapi

import (
	"testing"

	"github.com/xidi-go/xidi/internal/guidcodec"
	"github.com/xidi-go/xidi/internal/mapper"
)

type fakeLegacy struct {
	instances []LegacyInstance
}

func (f *fakeLegacy) CreateDevice(instanceID string) (any, error) { return instanceID, nil }

func (f *fakeLegacy) EnumDevices(cb func(LegacyInstance) bool) {
	for _, inst := range f.instances {
		if !cb(inst) {
			return
		}
	}
}

func (f *fakeLegacy) GetDeviceStatus(instanceID string) Result { return ResultOK }

func (f *fakeLegacy) FindDevice(name string) (string, bool) {
	for _, inst := range f.instances {
		if inst.Name == name {
			return inst.InstanceID, true
		}
	}

	return "", false
}

type fakeModern struct{ hidden map[string]bool }

func (f *fakeModern) IsModernDevice(instanceID string) bool { return f.hidden[instanceID] }

// TestEnumDevicesLegacyFirstWhenNothingHidden covers the case of no
// modern devices and one raw joystick G1: the callback receives G1,
// then the virtual controllers.
func TestEnumDevicesLegacyFirstWhenNothingHidden(t *testing.T) {
	legacy := &fakeLegacy{instances: []LegacyInstance{{InstanceID: "G1"}}}
	modern := &fakeModern{hidden: map[string]bool{}}
	root := New(legacy, modern, mapper.Builtin(), nil)

	var order []string

	root.EnumDevices(4, true, func(virtual bool, index int, legacyInst LegacyInstance) bool {
		if virtual {
			order = append(order, "virtual")
		} else {
			order = append(order, legacyInst.InstanceID)
		}

		return true
	})

	if len(order) != 5 || order[0] != "G1" {
		t.Fatalf("order = %v, want [G1 virtual virtual virtual virtual]", order)
	}

	for _, tag := range order[1:] {
		if tag != "virtual" {
			t.Errorf("expected only virtual entries after G1, got %q", tag)
		}
	}
}

// TestEnumDevicesVirtualFirstWhenHidden covers one modern device Gx and
// one unrelated raw joystick Gy: virtual controllers come first, Gx
// never appears, and Gy appears last.
func TestEnumDevicesVirtualFirstWhenHidden(t *testing.T) {
	legacy := &fakeLegacy{instances: []LegacyInstance{{InstanceID: "Gx"}, {InstanceID: "Gy"}}}
	modern := &fakeModern{hidden: map[string]bool{"Gx": true}}
	root := New(legacy, modern, mapper.Builtin(), nil)

	var order []string

	root.EnumDevices(4, true, func(virtual bool, index int, legacyInst LegacyInstance) bool {
		if virtual {
			order = append(order, "virtual")
		} else {
			order = append(order, legacyInst.InstanceID)
		}

		return true
	})

	if len(order) != 5 {
		t.Fatalf("len(order) = %d, want 5", len(order))
	}

	for _, tag := range order[:4] {
		if tag != "virtual" {
			t.Errorf("expected virtual controllers first, got %q", tag)
		}
	}

	if order[4] != "Gy" {
		t.Errorf("order[4] = %q, want Gy", order[4])
	}

	for _, tag := range order {
		if tag == "Gx" {
			t.Error("Gx should never appear")
		}
	}
}

func TestCreateDeviceUnknownMapperFails(t *testing.T) {
	legacy := &fakeLegacy{}
	modern := &fakeModern{hidden: map[string]bool{}}
	root := New(legacy, modern, mapper.Builtin(), nil)

	_, _, result := root.CreateDevice(guidcodec.Encode(0), "NoSuchMapper")
	if result != ResultFail {
		t.Errorf("CreateDevice with unknown mapper = %v, want fail", result)
	}
}
