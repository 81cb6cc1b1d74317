package icebrk

import "testing"

func TestCalculateV3MasterKeyKnownVersions(t *testing.T) {
	for _, inquiryNumber := range []uint64{1034567890, 1134567890, 1234567890, 1334567890} {
		got, err := CalculateV3MasterKey(inquiryNumber)
		if err != nil {
			t.Errorf("CalculateV3MasterKey(%d) returned unexpected error: %v", inquiryNumber, err)
		}
		if got >= 100000000 {
			t.Errorf("CalculateV3MasterKey(%d) = %d, want an 8-digit (or fewer) value", inquiryNumber, got)
		}
	}
}

func TestCalculateV3MasterKeyUnknownVersion(t *testing.T) {
	_, err := CalculateV3MasterKey(9934567890)
	if _, ok := err.(*UnknownVersionError); !ok {
		t.Errorf("expected *UnknownVersionError, got %T (%v)", err, err)
	}
}

func TestCalculateV3MasterKeyInvalidInquiryNumber(t *testing.T) {
	expectPanic(t, func() {
		CalculateV3MasterKey(10_000_000_000)
	})
}
