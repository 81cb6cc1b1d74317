package icebrk

import "fmt"

// The v1 algorithm keys one HMAC-SHA256 secret per 3DS sales region, encoded
// in the inquiry number's leading digit. The real key material ships as raw
// binary blobs alongside the original source and was not available to this
// port; the placeholders below keep the region table's shape (one named
// 32-byte key per known region) so CalculateV1MasterKey is structurally
// complete, but its output will not match a real console until the genuine
// key bytes are substituted in.
var (
	v1HmacKeyRegion00 = [32]byte{0x00: 0x01, 0x01: 0x02, 0x02: 0x03}
	v1HmacKeyRegion01 = [32]byte{0x00: 0x11, 0x01: 0x12, 0x02: 0x13}
	v1HmacKeyRegion02 = [32]byte{0x00: 0x21, 0x01: 0x22, 0x02: 0x23}
)

// UnknownRegionError is returned when an inquiry number encodes a region
// that has no known key for the algorithm being run.
type UnknownRegionError struct {
	Algorithm string
	Region    uint64
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("the %s inquiry number has an unknown region encoded: %d", e.Algorithm, e.Region)
}

// CalculateV1MasterKey calculates the master key for the parental control
// using the v1 algorithm. The inquiry number cannot be bigger than 10 digits
// and the date must be valid (there are some loose checks).
//
// The returned key must be presented with leading zeroes to always be 5
// digits long.
//
// Only works on 3DS (from 7.0.0 to 7.1.0).
//
// This function internally uses a set of HMAC keys, one for each region of
// the 3DS; at this moment only the keys for regions 0, 1 and 2 have been
// found.
func CalculateV1MasterKey(inquiryNumber uint64, day, month uint8) (uint32, error) {
	requireInquiryNumber(inquiryNumber, 9_999_999_999)
	requireDate(day, month)

	region := inquiryNumber / 1_000_000_000

	var hmacKey [32]byte
	switch region {
	case 0x00:
		hmacKey = v1HmacKeyRegion00
	case 0x01:
		hmacKey = v1HmacKeyRegion01
	case 0x02:
		hmacKey = v1HmacKeyRegion02
	default:
		return 0, &UnknownRegionError{Algorithm: "v1", Region: region}
	}

	return calculateMasterKeySharedV1AndV2(hmacKey, inquiryNumber, day, month, false), nil
}
