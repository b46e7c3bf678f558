// Package main implements the xidi-probe CLI, which exercises the root
// and device API wrappers end to end: enumerate, create each virtual
// device, poll, and print the first 16 bytes of processed state and the
// number of buffered events.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xidi-go/xidi/internal/config"
	"github.com/xidi-go/xidi/internal/dataformat"
	"github.com/xidi-go/xidi/internal/deviceapi"
	"github.com/xidi-go/xidi/internal/elementmap"
	"github.com/xidi-go/xidi/internal/guidcodec"
	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/physical"
	"github.com/xidi-go/xidi/internal/rootapi"
	"github.com/xidi-go/xidi/internal/xlog"
)

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "xidi-probe:", err)
		os.Exit(1)
	}
}

// noLegacyAPI stands in for the OS-provided legacy library this process
// would otherwise link against; the probe has no raw devices to report.
type noLegacyAPI struct{}

func (noLegacyAPI) CreateDevice(instanceID string) (any, error) { return nil, nil }
func (noLegacyAPI) EnumDevices(cb func(rootapi.LegacyInstance) bool) {}
func (noLegacyAPI) GetDeviceStatus(instanceID string) rootapi.Result { return rootapi.ResultOK }
func (noLegacyAPI) FindDevice(name string) (string, bool)            { return "", false }

// noModernDevices reports that nothing is hidden, since the probe has no
// legacy instances to cross-reference.
type noModernDevices struct{}

func (noModernDevices) IsModernDevice(instanceID string) bool { return false }

func main() {
	var (
		log       *xlog.Logger
		logFile   *os.File
		cfg       *config.ConfigData
		registry  mapper.Registry
		root      *rootapi.Root
		builder   strings.Builder
		err       error
	)

	log, logFile, err = xlog.NewFile("xidi-probe.log")
	exitIf(err)
	defer logFile.Close()

	cfg, err = config.Read("xidi.ini", config.DefaultSchema(physical.SlotCount))
	exitIf(err)

	if cfg.HasErrors() {
		for _, e := range cfg.Errors() {
			log.Warnf("config: %s", e)
		}
	}

	registry = mapper.Builtin()

	for _, path := range cfg.StringSet("CustomMappers", "Blueprint") {
		def, err := mapper.LoadCustom(path)
		if err != nil {
			log.Warnf("custom mapper %s: %v", path, err)
			continue
		}

		registry[def.Name] = def
	}

	root = rootapi.New(noLegacyAPI{}, noModernDevices{}, registry, log)

	mapperName, ok := cfg.String("Mapper", "Type")
	if !ok {
		mapperName = "StandardGamepad"
	}

	var devices []*deviceapi.Device

	root.EnumDevices(physical.SlotCount, true, func(virtual bool, index int, legacy rootapi.LegacyInstance) bool {
		if !virtual {
			builder.WriteString(fmt.Sprintf("legacy device: %s\n", legacy.InstanceID))
			return true
		}

		dev, _, result := root.CreateDevice(guidcodec.Encode(index), mapperName)
		if result != rootapi.ResultOK {
			log.Errorf("create_device(%d): %v", index, result)
			return true
		}

		def := registry[mapperName]

		requests := make([]dataformat.ObjectRequest, 0, len(def.Capabilities().SortedAxes()))
		offset := 0

		for _, axis := range def.Capabilities().SortedAxes() {
			a := axis
			requests = append(requests, dataformat.ObjectRequest{Offset: offset, Size: 4, Axis: &a})
			offset += 4
		}

		for i := 0; i < def.Capabilities().ButtonMax; i++ {
			instance := i
			requests = append(requests, dataformat.ObjectRequest{
				Offset: offset, Size: 1, Kind: elementmap.KindButton, Instance: &instance,
			})
			offset++
		}

		if result = dev.SetDataFormat(def.Capabilities(), offset, requests); result != rootapi.ResultOK {
			log.Errorf("set_data_format(%d): %v", index, result)
			return true
		}

		if result = dev.Acquire(); result != rootapi.ResultOK {
			log.Errorf("acquire(%d): %v", index, result)
			return true
		}

		devices = append(devices, dev)
		builder.WriteString(fmt.Sprintf("virtual controller %d: %s\n", index, guidcodec.ProductName(index)))

		return true
	})

	time.Sleep(100 * time.Millisecond)

	buf := make([]byte, 256)

	for i, dev := range devices {
		dev.Poll()

		if result := dev.GetState(buf); result != rootapi.ResultOK {
			builder.WriteString(fmt.Sprintf("controller %d: get_state -> %v\n", i, result))
			continue
		}

		builder.WriteString(fmt.Sprintf("controller %d state bytes: % x\n", i, buf[:16]))

		events, result := dev.GetDeviceData(8, false)
		builder.WriteString(fmt.Sprintf("controller %d: %d events, %v\n", i, len(events), result))
	}

	fmt.Print(builder.String())
}
