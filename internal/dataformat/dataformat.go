// Package dataformat compiles an application-supplied layout descriptor
// into an offset map against a mapper's capabilities, then translates
// processed state and buffered events into that layout.
package dataformat

import (
	"fmt"
	"sort"

	"github.com/xidi-go/xidi/internal/elementmap"
	"github.com/xidi-go/xidi/internal/mapper"
	"github.com/xidi-go/xidi/internal/virtualctrl"
)

// ObjectRequest is one entry of an application's layout descriptor: a
// byte offset plus a selector for which element to bind there.
//
// Selection precedence, matching the translator algorithm: a named Axis
// takes priority, then a named Instance within Kind, then "next free
// element of any kind" (axes, then buttons, then POV) when AnyKind is set,
// then "next free instance of Kind" otherwise.
type ObjectRequest struct {
	Offset int
	Size   int

	Kind     elementmap.ElementKind
	AnyKind  bool
	Axis     *elementmap.Axis
	Instance *int
}

// elementRef identifies one bound virtual element, used as a map key.
type elementRef struct {
	kind   elementmap.ElementKind
	axis   elementmap.Axis
	button int
}

// Plan is a compiled offset map: which element lives at which byte
// offset in the application's buffer, and back.
type Plan struct {
	size            int
	elementToOffset map[elementRef]int
	offsetToElement map[int]elementRef
	sizeAt          map[int]int
}

// ObjectData is one translated buffered-event record.
type ObjectData struct {
	Offset    int
	Value     int32
	Sequence  uint32
	Timestamp uint32
}

// Compile validates requests against caps and builds a Plan. On any
// failure no partial Plan is returned.
func Compile(caps mapper.Capabilities, size int, requests []ObjectRequest) (*Plan, error) {
	if err := validateNoOverlap(requests); err != nil {
		return nil, err
	}

	axesAvail := caps.SortedAxes()
	buttonsAvail := make([]int, caps.ButtonMax)
	for i := range buttonsAvail {
		buttonsAvail[i] = i + 1
	}

	claimedAxis := map[elementmap.Axis]bool{}
	claimedButton := map[int]bool{}
	claimedPov := false

	elementToOffset := map[elementRef]int{}
	offsetToElement := map[int]elementRef{}
	sizeAt := map[int]int{}

	for i, req := range requests {
		ref, err := resolveRequest(req, caps, axesAvail, buttonsAvail, claimedAxis, claimedButton, &claimedPov)
		if err != nil {
			return nil, fmt.Errorf("dataformat.Compile: request %d: %w", i, err)
		}

		wantSize := sizeForKind(ref.kind)
		if req.Size != 0 && req.Size != wantSize {
			return nil, fmt.Errorf("dataformat.Compile: request %d: size %d does not match element size %d", i, req.Size, wantSize)
		}

		markClaimed(ref, claimedAxis, claimedButton, &claimedPov)

		elementToOffset[ref] = req.Offset
		offsetToElement[req.Offset] = ref
		sizeAt[req.Offset] = wantSize
	}

	return &Plan{
		size:            size,
		elementToOffset: elementToOffset,
		offsetToElement: offsetToElement,
		sizeAt:          sizeAt,
	}, nil
}

func sizeForKind(k elementmap.ElementKind) int {
	if k == elementmap.KindButton {
		return 1
	}

	return 4
}

func validateNoOverlap(requests []ObjectRequest) error {
	type span struct{ lo, hi int }

	spans := make([]span, 0, len(requests))

	for i, req := range requests {
		size := req.Size
		if size == 0 {
			size = 4
		}

		if size != 1 && size != 4 {
			return fmt.Errorf("dataformat.Compile: request %d: invalid size %d", i, size)
		}

		spans = append(spans, span{req.Offset, req.Offset + size})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	for i := 1; i < len(spans); i++ {
		if spans[i].lo < spans[i-1].hi {
			return fmt.Errorf("dataformat.Compile: overlapping byte ranges at offset %d", spans[i].lo)
		}
	}

	return nil
}

// resolveRequest implements step 3's selection precedence for one
// request, without mutating claim state (the caller commits via
// markClaimed only once resolution and size validation both succeed).
func resolveRequest(
	req ObjectRequest,
	caps mapper.Capabilities,
	axesAvail []elementmap.Axis,
	buttonsAvail []int,
	claimedAxis map[elementmap.Axis]bool,
	claimedButton map[int]bool,
	claimedPov *bool,
) (elementRef, error) {
	switch {
	case req.Axis != nil:
		a := *req.Axis
		if !caps.Axes[a] {
			return elementRef{}, fmt.Errorf("axis %v not present in mapper capabilities", a)
		}

		if claimedAxis[a] {
			return elementRef{}, fmt.Errorf("axis %v already claimed", a)
		}

		return elementRef{kind: elementmap.KindAxis, axis: a}, nil

	case req.Instance != nil && req.Kind == elementmap.KindAxis:
		idx := *req.Instance
		if idx < 0 || idx >= len(axesAvail) {
			return elementRef{}, fmt.Errorf("axis instance %d out of range", idx)
		}

		a := axesAvail[idx]
		if claimedAxis[a] {
			return elementRef{}, fmt.Errorf("axis instance %d already claimed", idx)
		}

		return elementRef{kind: elementmap.KindAxis, axis: a}, nil

	case req.Instance != nil && req.Kind == elementmap.KindButton:
		idx := *req.Instance
		if idx < 0 || idx >= len(buttonsAvail) {
			return elementRef{}, fmt.Errorf("button instance %d out of range", idx)
		}

		b := buttonsAvail[idx]
		if claimedButton[b] {
			return elementRef{}, fmt.Errorf("button instance %d already claimed", idx)
		}

		return elementRef{kind: elementmap.KindButton, button: b}, nil

	case req.Instance != nil && req.Kind == elementmap.KindPov:
		if !caps.HasPov || *claimedPov {
			return elementRef{}, fmt.Errorf("POV instance %d unavailable", *req.Instance)
		}

		return elementRef{kind: elementmap.KindPov}, nil

	case !req.AnyKind && req.Kind == elementmap.KindAxis:
		for _, a := range axesAvail {
			if !claimedAxis[a] {
				return elementRef{kind: elementmap.KindAxis, axis: a}, nil
			}
		}

		return elementRef{}, fmt.Errorf("no free axis available")

	case !req.AnyKind && req.Kind == elementmap.KindButton:
		for _, b := range buttonsAvail {
			if !claimedButton[b] {
				return elementRef{kind: elementmap.KindButton, button: b}, nil
			}
		}

		return elementRef{}, fmt.Errorf("no free button available")

	case !req.AnyKind && req.Kind == elementmap.KindPov:
		if caps.HasPov && !*claimedPov {
			return elementRef{kind: elementmap.KindPov}, nil
		}

		return elementRef{}, fmt.Errorf("no free POV available")

	case req.AnyKind:
		for _, a := range axesAvail {
			if !claimedAxis[a] {
				return elementRef{kind: elementmap.KindAxis, axis: a}, nil
			}
		}

		for _, b := range buttonsAvail {
			if !claimedButton[b] {
				return elementRef{kind: elementmap.KindButton, button: b}, nil
			}
		}

		if caps.HasPov && !*claimedPov {
			return elementRef{kind: elementmap.KindPov}, nil
		}

		return elementRef{}, fmt.Errorf("no free element of any kind available")

	default:
		return elementRef{}, fmt.Errorf("request names neither a specific element nor a kind")
	}
}

func markClaimed(ref elementRef, claimedAxis map[elementmap.Axis]bool, claimedButton map[int]bool, claimedPov *bool) {
	switch ref.kind {
	case elementmap.KindAxis:
		claimedAxis[ref.axis] = true
	case elementmap.KindButton:
		claimedButton[ref.button] = true
	case elementmap.KindPov:
		*claimedPov = true
	}
}

// povHundredths encodes a resolved POV direction as the API-standard
// hundredths-of-a-degree value, centered as -1.
func povHundredths(dir elementmap.PovDir) int32 {
	switch dir {
	case elementmap.PovCentered:
		return -1
	case elementmap.PovN:
		return 0
	case elementmap.PovNE:
		return 4500
	case elementmap.PovE:
		return 9000
	case elementmap.PovSE:
		return 13500
	case elementmap.PovS:
		return 18000
	case elementmap.PovSW:
		return 22500
	case elementmap.PovW:
		return 27000
	case elementmap.PovNW:
		return 31500
	default:
		return -1
	}
}

// Write zeroes the first Size() bytes of dst and writes every bound
// element's current value at its offset, little-endian and native width.
func (p *Plan) Write(dst []byte, state virtualctrl.ProcessedState) error {
	if len(dst) < p.size {
		return fmt.Errorf("dataformat.Write: buffer too small: have %d, need %d", len(dst), p.size)
	}

	for i := range dst[:p.size] {
		dst[i] = 0
	}

	for offset, ref := range p.offsetToElement {
		switch ref.kind {
		case elementmap.KindAxis:
			putLE32(dst[offset:], state.Axis[ref.axis])
		case elementmap.KindButton:
			if ref.button >= 1 && ref.button <= len(state.Buttons) && state.Buttons[ref.button-1] {
				dst[offset] = 0x80
			} else {
				dst[offset] = 0x00
			}
		case elementmap.KindPov:
			putLE32(dst[offset:], povHundredths(state.Pov))
		}
	}

	return nil
}

func putLE32(dst []byte, v int32) {
	u := uint32(v)
	dst[0] = byte(u)
	dst[1] = byte(u >> 8)
	dst[2] = byte(u >> 16)
	dst[3] = byte(u >> 24)
}

// TranslateEvents converts every given virtualctrl.Event into its
// object-data form, in order. Events bound to no offset in this Plan are
// skipped. The caller decides how many events to pass and whether they
// were peeked or dequeued.
func (p *Plan) TranslateEvents(events []virtualctrl.Event) []ObjectData {
	out := make([]ObjectData, 0, len(events))

	for _, e := range events {
		var (
			ref   elementRef
			value int32
		)

		switch e.ValueKind {
		case virtualctrl.ValueAxis:
			ref = elementRef{kind: elementmap.KindAxis, axis: e.Axis}
			value = e.AxisValue
		case virtualctrl.ValueButton:
			ref = elementRef{kind: elementmap.KindButton, button: e.Button}
			if e.ButtonValue {
				value = 0x80
			}
		case virtualctrl.ValuePov:
			ref = elementRef{kind: elementmap.KindPov}
			value = povHundredths(elementmap.PovDir(e.PovValue))
		}

		offset, ok := p.elementToOffset[ref]
		if !ok {
			continue
		}

		out = append(out, ObjectData{
			Offset:    offset,
			Value:     value,
			Sequence:  e.Sequence,
			Timestamp: e.TimestampMs,
		})
	}

	return out
}

// Size is the application buffer size this Plan was compiled for.
func (p *Plan) Size() int { return p.size }
