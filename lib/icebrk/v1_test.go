package icebrk

import "testing"

func TestCalculateV1MasterKeyKnownRegions(t *testing.T) {
	for _, inquiryNumber := range []uint64{123456789, 1123456789, 2123456789} {
		if _, err := CalculateV1MasterKey(inquiryNumber, 5, 8); err != nil {
			t.Errorf("CalculateV1MasterKey(%d) returned unexpected error: %v", inquiryNumber, err)
		}
	}
}

func TestCalculateV1MasterKeyUnknownRegion(t *testing.T) {
	_, err := CalculateV1MasterKey(9123456789, 5, 8)
	if _, ok := err.(*UnknownRegionError); !ok {
		t.Errorf("expected *UnknownRegionError, got %T (%v)", err, err)
	}
}

func TestCalculateV1MasterKeyInvalidInquiryNumber(t *testing.T) {
	expectPanic(t, func() {
		CalculateV1MasterKey(10_000_000_000, 5, 8)
	})
}

func TestCalculateV1MasterKeyIsDeterministic(t *testing.T) {
	a, err := CalculateV1MasterKey(123456789, 5, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := CalculateV1MasterKey(123456789, 5, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("expected deterministic output, got %d and %d", a, b)
	}
	if a >= 100000 {
		t.Errorf("expected a 5-digit (or fewer) master key, got %d", a)
	}
}
