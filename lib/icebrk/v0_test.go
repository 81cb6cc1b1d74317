package icebrk

import "testing"

const (
	v0TestInquiryNumber uint32 = 84293062
	v0TestDay           uint8  = 5
	v0TestMonth         uint8  = 8
)

func TestCalculateV0MasterKey(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		want     uint32
	}{
		{"wii", PlatformWii, 66150},
		{"dsi", PlatformDsi, 66150},
		{"wii_u", PlatformWiiU, 87902},
		{"3ds", Platform3ds, 87902},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateV0MasterKey(tt.platform, v0TestInquiryNumber, v0TestDay, v0TestMonth)
			if got != tt.want {
				t.Errorf("CalculateV0MasterKey() = %d, want %d", got, tt.want)
			}
		})
	}
}

func expectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected a panic, got none")
		}
	}()
	f()
}

func TestCalculateV0MasterKeyUnsupportedPlatform(t *testing.T) {
	expectPanic(t, func() {
		CalculateV0MasterKey(PlatformSwitch, v0TestInquiryNumber, v0TestDay, v0TestMonth)
	})
}

func TestCalculateV0MasterKeyInvalidInquiryNumber(t *testing.T) {
	expectPanic(t, func() {
		CalculateV0MasterKey(PlatformWii, 100_000_000, v0TestDay, v0TestMonth)
	})
}

func TestCalculateV0MasterKeyInvalidDate(t *testing.T) {
	expectPanic(t, func() {
		CalculateV0MasterKey(PlatformWii, v0TestInquiryNumber, 0, v0TestMonth)
	})
	expectPanic(t, func() {
		CalculateV0MasterKey(PlatformWii, v0TestInquiryNumber, v0TestDay, 13)
	})
}
