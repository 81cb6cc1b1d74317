package main

import (
	"testing"

	"github.com/zelzip/niiebla-go/lib/icebrk"
)

func TestParsePlatformFlag(t *testing.T) {
	cases := []struct {
		value string
		want  icebrk.Platform
	}{
		{"wii", icebrk.PlatformWii},
		{"dsi", icebrk.PlatformDsi},
		{"3ds", icebrk.Platform3ds},
		{"wiiu", icebrk.PlatformWiiU},
		{"switch", icebrk.PlatformSwitch},
	}

	for _, c := range cases {
		got, err := parsePlatformFlag(c.value)
		if err != nil {
			t.Errorf("parsePlatformFlag(%q) error = %v", c.value, err)
			continue
		}
		if got != c.want {
			t.Errorf("parsePlatformFlag(%q) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestParsePlatformFlagUnknown(t *testing.T) {
	if _, err := parsePlatformFlag("gamecube"); err == nil {
		t.Fatal("parsePlatformFlag() expected an error for an unknown platform")
	}
}

func TestPreferredDateOrderOverride(t *testing.T) {
	if !preferredDateOrder("US") {
		t.Error("preferredDateOrder(\"US\") = false, want true")
	}
	if preferredDateOrder("FR") {
		t.Error("preferredDateOrder(\"FR\") = true, want false")
	}
}

func TestFormatDateEcho(t *testing.T) {
	if got := formatDateEcho(5, 8, true); got != "08/05" {
		t.Errorf("formatDateEcho(5, 8, true) = %q, want %q", got, "08/05")
	}
	if got := formatDateEcho(5, 8, false); got != "05/08" {
		t.Errorf("formatDateEcho(5, 8, false) = %q, want %q", got, "05/08")
	}
}
