package virtualctrl

import "testing"

func TestTransformDefaultReachesFullScaleAtExtremes(t *testing.T) {
	p := DefaultAxisProperties()

	if got := p.Transform(32767); got != 32767 {
		t.Errorf("Transform(32767) = %d, want 32767", got)
	}

	if got := p.Transform(-32768); got != -32768 {
		t.Errorf("Transform(-32768) = %d, want -32768", got)
	}

	if got := p.Transform(0); got != p.rangeNeutral() {
		t.Errorf("Transform(0) = %d, want range neutral %d", got, p.rangeNeutral())
	}
}

func TestTransformDeadzoneClampsToNeutral(t *testing.T) {
	p := DefaultAxisProperties()
	p.DeadzonePct = 5000 // 50%
	p.recompute()

	neutral := p.rangeNeutral()

	for _, raw := range []int32{1, p.deadzonePositive, -1, p.deadzoneNegative} {
		if got := p.Transform(raw); got != neutral {
			t.Errorf("Transform(%d) = %d, want neutral %d", raw, got, neutral)
		}
	}
}

func TestTransformSaturationClampsToExtreme(t *testing.T) {
	p := DefaultAxisProperties()
	p.SaturationPct = 5000 // 50%
	p.recompute()

	if got := p.Transform(32767); got != p.RangeMax {
		t.Errorf("Transform(32767) = %d, want %d", got, p.RangeMax)
	}

	if got := p.Transform(-32768); got != p.RangeMin {
		t.Errorf("Transform(-32768) = %d, want %d", got, p.RangeMin)
	}
}

func TestTransformCustomRangeRemap(t *testing.T) {
	p := DefaultAxisProperties()
	p.RangeMin, p.RangeMax = -1000, 1000
	p.recompute()

	if got := p.Transform(32767); got != 1000 {
		t.Errorf("Transform(32767) = %d, want 1000", got)
	}

	if got := p.Transform(-32768); got != -1000 {
		t.Errorf("Transform(-32768) = %d, want -1000", got)
	}
}

func TestTransformGainHalvesDisplacement(t *testing.T) {
	p := DefaultAxisProperties()
	p.Gain = 5000 // 50%
	p.recompute()

	neutral := p.rangeNeutral()

	got := p.Transform(32767)
	want := neutral + (32767-neutral)/2

	if diff := got - want; diff < -1 || diff > 1 {
		t.Errorf("Transform(32767) with 50%% gain = %d, want ~%d", got, want)
	}
}
