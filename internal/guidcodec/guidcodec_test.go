package guidcodec

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for i := 0; i < 4; i++ {
		g := Encode(i)

		idx, ok := Decode(g)
		if !ok || idx != i {
			t.Errorf("Decode(Encode(%d)) = (%d, %v), want (%d, true)", i, idx, ok, i)
		}
	}
}

func TestDecodeRejectsForeignGUID(t *testing.T) {
	var foreign [16]byte

	if _, ok := Decode(foreign); ok {
		t.Error("Decode accepted a non-Xidi GUID")
	}
}

func TestEncodeDistinctIndices(t *testing.T) {
	a := Encode(0)
	b := Encode(1)

	if a == b {
		t.Error("Encode(0) == Encode(1)")
	}
}
