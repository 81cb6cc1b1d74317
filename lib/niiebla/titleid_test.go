package niiebla

import "testing"

// Fake ID "4A4132BC-HAGA"
const testTitleIDNumber = TitleId(5350613616540337985)

const testTitleIDNumberNotValidASCII = TitleId(5350613615614431505)

func TestTitleIdDefaultDisplay(t *testing.T) {
	if got := testTitleIDNumber.String(); got != "4a4132bc-48414741" {
		t.Errorf("String() = %q, want %q", got, "4a4132bc-48414741")
	}
}

func TestTitleIdAsciiDisplay(t *testing.T) {
	if got := testTitleIDNumber.DisplayASCII(); got != "4a4132bc-HAGA" {
		t.Errorf("DisplayASCII() = %q, want %q", got, "4a4132bc-HAGA")
	}
}

func TestTitleIdAsciiDisplayInvalidAscii(t *testing.T) {
	if got := testTitleIDNumberNotValidASCII.DisplayASCII(); got != testTitleIDNumberNotValidASCII.String() {
		t.Errorf("DisplayASCII() = %q, want fallback %q", got, testTitleIDNumberNotValidASCII.String())
	}
}

func TestTitleIdWithLowerHalf(t *testing.T) {
	id := NewTitleIDFromHalves(500, 500)
	id = id.WithLowerHalf(100)

	if id.LowerHalf() != 100 {
		t.Errorf("LowerHalf() = %d, want 100", id.LowerHalf())
	}
	if id.HigherHalf() != 500 {
		t.Errorf("HigherHalf() = %d, want 500", id.HigherHalf())
	}
}

func TestTitleIdWithHigherHalf(t *testing.T) {
	id := NewTitleIDFromHalves(500, 500)
	id = id.WithHigherHalf(100)

	if id.LowerHalf() != 500 {
		t.Errorf("LowerHalf() = %d, want 500", id.LowerHalf())
	}
	if id.HigherHalf() != 100 {
		t.Errorf("HigherHalf() = %d, want 100", id.HigherHalf())
	}
}

func TestTitleIdDisplayWiiPlatform(t *testing.T) {
	cases := []struct {
		id   TitleId
		want string
	}{
		{NewTitleIDFromHalves(1, 1), "BOOT2"},
		{NewTitleIDFromHalves(1, 2), "System Menu"},
		{NewTitleIDFromHalves(1, 0x100), "BC"},
		{NewTitleIDFromHalves(1, 0x101), "MIOS"},
		{NewTitleIDFromHalves(1, 30), "IOS30 (Wii)"},
		{NewTitleIDFromHalves(2, 1), NewTitleIDFromHalves(2, 1).String()},
	}

	for _, c := range cases {
		if got := c.id.DisplayWiiPlatform(); got != c.want {
			t.Errorf("DisplayWiiPlatform() for %v = %q, want %q", c.id, got, c.want)
		}
	}
}
