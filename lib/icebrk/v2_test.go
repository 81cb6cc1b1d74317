package icebrk

import "testing"

func TestCalculateV2MasterKeyKnownRegions(t *testing.T) {
	tests := []struct {
		name          string
		platform      Platform
		inquiryNumber uint64
	}{
		{"wii_u_region_01", PlatformWiiU, 1100000000},
		{"wii_u_region_02", PlatformWiiU, 2100000000},
		{"3ds_region_00", Platform3ds, 100_000_000},
		{"3ds_region_01_version_1a", Platform3ds, 1_260_000_000},
		{"3ds_region_09_version_12", Platform3ds, 9_180_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CalculateV2MasterKey(tt.platform, tt.inquiryNumber, 5, 8); err != nil {
				t.Errorf("CalculateV2MasterKey(%v, %d) returned unexpected error: %v", tt.platform, tt.inquiryNumber, err)
			}
		})
	}
}

func TestCalculateV2MasterKeyUnsupportedPlatform(t *testing.T) {
	expectPanic(t, func() {
		CalculateV2MasterKey(PlatformWii, 1100000000, 5, 8)
	})
}

func TestCalculateV2MasterKeyUnknownVersion(t *testing.T) {
	_, err := CalculateV2MasterKey(Platform3ds, 99_999_999, 5, 8)
	if err == nil {
		t.Error("expected an error for an out-of-range 3DS version")
	}
}
