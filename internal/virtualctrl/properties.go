// Package virtualctrl is the per-controller runtime: sampling thread,
// processed-state cache, properties, and event buffer.
package virtualctrl

import "github.com/xidi-go/xidi/internal/elementmap"

// Basis-point scale for deadzone/saturation percentages.
const BasisPointsFull = 10000

// AxisProperties holds one axis's range, deadzone, saturation, and gain,
// plus cached cutoffs derived from them.
type AxisProperties struct {
	RangeMin, RangeMax int32
	DeadzonePct        int32 // 0..10000
	SaturationPct      int32 // 0..10000
	Gain               int32 // basis points, 10000 = 100%

	// Cached, recomputed by recompute() whenever the property changes.
	deadzonePositive, deadzoneNegative     int32
	saturationPositive, saturationNegative int32
}

// DefaultAxisProperties returns the default properties: full internal
// range, zero deadzone, 100% saturation, 100% gain.
func DefaultAxisProperties() AxisProperties {
	p := AxisProperties{
		RangeMin:      elementmap.AxisMin,
		RangeMax:      elementmap.AxisMax,
		DeadzonePct:   0,
		SaturationPct: BasisPointsFull,
		Gain:          BasisPointsFull,
	}
	p.recompute()

	return p
}

// recompute derives the deadzone/saturation raw cutoffs from the
// basis-point percentages, symmetric about neutral.
func (p *AxisProperties) recompute() {
	const maxDeviation = elementmap.AxisMax // magnitude from neutral to either extreme

	p.deadzonePositive = int32(int64(p.DeadzonePct) * int64(maxDeviation) / BasisPointsFull)
	p.deadzoneNegative = -p.deadzonePositive
	p.saturationPositive = int32(int64(p.SaturationPct) * int64(maxDeviation) / BasisPointsFull)
	p.saturationNegative = -p.saturationPositive
}

// rangeNeutral is the midpoint of the configured output range, truncated
// toward zero (0 for the default range [-32768, 32767]).
func (p AxisProperties) rangeNeutral() int32 {
	return int32((int64(p.RangeMin) + int64(p.RangeMax)) / 2)
}

// mapValueInRangeToRange maps a value from one linear range to another,
// both expressed as (origin, maxDisplacement) pairs, allowing either
// range to run in either direction.
func mapValueInRangeToRange(value, oldOrigin, oldDispMax, newOrigin, newDispMax int64) int64 {
	valueDisp := value - oldOrigin
	oldMagnitude := oldDispMax - oldOrigin
	newMagnitude := newDispMax - newOrigin

	if oldMagnitude == 0 {
		return newOrigin
	}

	return newOrigin + (valueDisp*newMagnitude)/oldMagnitude
}

// Transform applies deadzone, saturation, range remap, and gain to one
// raw axis value. The boundary is inclusive on both the deadzone and
// saturation sides.
func (p AxisProperties) Transform(raw int32) int32 {
	neutral := p.rangeNeutral()

	var out int32

	switch {
	case raw > elementmap.AxisNeutral:
		switch {
		case raw <= p.deadzonePositive:
			out = neutral
		case raw >= p.saturationPositive:
			out = p.RangeMax
		default:
			out = int32(mapValueInRangeToRange(
				int64(raw), int64(p.deadzonePositive), int64(p.saturationPositive),
				int64(neutral), int64(p.RangeMax)))
		}
	case raw < elementmap.AxisNeutral:
		switch {
		case raw >= p.deadzoneNegative:
			out = neutral
		case raw <= p.saturationNegative:
			out = p.RangeMin
		default:
			out = int32(mapValueInRangeToRange(
				int64(raw), int64(p.deadzoneNegative), int64(p.saturationNegative),
				int64(neutral), int64(p.RangeMin)))
		}
	default:
		out = neutral
	}

	return applyGain(out, neutral, p.Gain)
}

// applyGain scales a transformed value's displacement from neutral by
// the configured gain.
func applyGain(value, neutral, gainBp int32) int32 {
	if gainBp == BasisPointsFull {
		return value
	}

	disp := int64(value) - int64(neutral)
	disp = disp * int64(gainBp) / BasisPointsFull

	return neutral + int32(disp)
}
