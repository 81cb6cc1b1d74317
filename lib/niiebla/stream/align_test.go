package stream

import "testing"

func TestAlignToBoundary(t *testing.T) {
	cases := []struct {
		value, boundary, want uint64
	}{
		{117, 64, 128},
		{100, 50, 100},
		{73, 73, 73},
		{0, 0, 0},
		{1, 64, 64},
		{64, 64, 64},
	}
	for _, c := range cases {
		if got := AlignToBoundary(c.value, c.boundary); got != c.want {
			t.Errorf("AlignToBoundary(%d, %d) = %d, want %d", c.value, c.boundary, got, c.want)
		}
	}
}

func TestFloorAlign(t *testing.T) {
	if got := FloorAlign(17, 16); got != 16 {
		t.Errorf("FloorAlign(17, 16) = %d, want 16", got)
	}
	if got := FloorAlign(16, 16); got != 16 {
		t.Errorf("FloorAlign(16, 16) = %d, want 16", got)
	}
	if got := FloorAlign(0, 16); got != 0 {
		t.Errorf("FloorAlign(0, 16) = %d, want 0", got)
	}
}
