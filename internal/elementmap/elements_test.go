package elementmap

import "testing"

func TestAxisMapperRoundTrip(t *testing.T) {
	var (
		m   = AxisMapper{Target: X, Direction: Both}
		out = NewState(0)
	)

	for _, v := range []int32{AxisMin, -1, 0, 1, AxisMax} {
		input := float64(v) / AxisMax
		if v < 0 {
			input = float64(v) / -AxisMin
		}

		out = NewState(0)
		m.ContributeAnalog(input, &out)
		out.Clamp()

		if out.Axis[X] != v {
			t.Errorf("input %v: axis = %d, want %d", v, out.Axis[X], v)
		}
	}
}

func TestSharedTriggersAxisCancel(t *testing.T) {
	lt := AxisMapper{Target: Z, Direction: Positive}
	rt := AxisMapper{Target: Z, Direction: Negative}

	cases := []struct {
		lt, rt uint8
		want   int32
	}{
		{255, 0, 32767},
		{0, 255, -32768},
		{255, 255, 0},
	}

	for _, c := range cases {
		out := NewState(0)
		lt.ContributeTrigger(float64(c.lt)/255.0, &out)
		rt.ContributeTrigger(float64(c.rt)/255.0, &out)
		out.Clamp()

		if out.Axis[Z] != c.want {
			t.Errorf("lt=%d rt=%d: Z = %d, want %d", c.lt, c.rt, out.Axis[Z], c.want)
		}
	}
}

func TestNeutralMappingIsNeutral(t *testing.T) {
	out := NewState(2)
	m := AxisMapper{Target: X, Direction: Both}
	b := ButtonMapper{Target: 1}
	p := PovMapper{Target: PovUp}

	m.ContributeAnalog(0, &out)
	b.ContributeButton(false, &out)
	p.ContributeAnalog(0, &out)
	out.Clamp()

	if out.Axis[X] != AxisNeutral {
		t.Errorf("axis = %d, want neutral", out.Axis[X])
	}

	if out.Buttons[0] {
		t.Errorf("button should be false")
	}

	if out.ResolvePov() != PovCentered {
		t.Errorf("pov should be centered")
	}
}

func TestButtonOrContribution(t *testing.T) {
	out := NewState(1)
	a := ButtonMapper{Target: 1}
	b := ButtonMapper{Target: 1}

	a.ContributeButton(false, &out)
	b.ContributeButton(true, &out)

	if !out.Buttons[0] {
		t.Errorf("button should be true when either mapper fires")
	}
}

func TestSplitMapperRoutesByInputSign(t *testing.T) {
	m := SplitMapper{
		NegativeInner: AxisMapper{Target: X, Direction: Negative},
		PositiveInner: AxisMapper{Target: Y, Direction: Positive},
	}

	out := NewState(0)
	m.ContributeAnalog(-0.5, &out)
	out.Clamp()

	if out.Axis[X] >= 0 {
		t.Errorf("negative input: Axis[X] = %d, want < 0", out.Axis[X])
	}

	if out.Axis[Y] != 0 {
		t.Errorf("negative input should not reach the positive inner mapper, Axis[Y] = %d", out.Axis[Y])
	}

	out = NewState(0)
	m.ContributeAnalog(0.5, &out)
	out.Clamp()

	if out.Axis[Y] <= 0 {
		t.Errorf("positive input: Axis[Y] = %d, want > 0", out.Axis[Y])
	}
}

func TestSplitMapperTargetsUnionOfInners(t *testing.T) {
	m := SplitMapper{
		NegativeInner: AxisMapper{Target: X},
		PositiveInner: AxisMapper{Target: Y},
	}

	targets := m.Targets()
	if len(targets) != 2 {
		t.Fatalf("len(Targets()) = %d, want 2", len(targets))
	}
}

func TestCompoundMapperFansOutToEveryInner(t *testing.T) {
	m := CompoundMapper{
		Inner: []Element{
			AxisMapper{Target: X, Direction: Both},
			ButtonMapper{Target: 1},
		},
	}

	out := NewState(1)
	m.ContributeAnalog(1, &out)
	out.Clamp()

	if out.Axis[X] != AxisMax {
		t.Errorf("Axis[X] = %d, want %d", out.Axis[X], AxisMax)
	}

	if !out.Buttons[0] {
		t.Error("CompoundMapper should also have fanned out to the button mapper")
	}
}

func TestCompoundMapperCloneIsIndependent(t *testing.T) {
	original := CompoundMapper{Inner: []Element{AxisMapper{Target: X}}}
	cloned := original.Clone().(CompoundMapper)

	if len(cloned.Inner) != 1 {
		t.Fatalf("len(cloned.Inner) = %d, want 1", len(cloned.Inner))
	}
}
