// Package icebrk implements the different algorithms Nintendo has used across
// its consoles to generate the numeric master key that resets a system's
// parental control PIN, given the inquiry number shown on screen and (for the
// older algorithms) the current date.
package icebrk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Platform is one of the Nintendo consoles that has shipped a parental
// control feature covered by this package.
type Platform int

const (
	// PlatformWii is the Nintendo Wii.
	PlatformWii Platform = iota

	// PlatformDsi is the Nintendo DSi.
	PlatformDsi

	// Platform3ds is the Nintendo 3DS family.
	Platform3ds

	// PlatformWiiU is the Nintendo Wii U.
	PlatformWiiU

	// PlatformSwitch is the Nintendo Switch.
	PlatformSwitch
)

func (p Platform) String() string {
	switch p {
	case PlatformWii:
		return "Wii"
	case PlatformDsi:
		return "DSi"
	case Platform3ds:
		return "3DS"
	case PlatformWiiU:
		return "Wii U"
	case PlatformSwitch:
		return "Switch"
	default:
		return "unknown"
	}
}

// requirePlatform panics if platform is not one of a fixed, already-known
// set of consoles an algorithm was deployed on — a caller passing a
// platform the algorithm was never shipped on is a programming error, not a
// recoverable runtime failure, so it is asserted rather than returned.
func requirePlatform(algorithm string, platform Platform, supported ...Platform) {
	for _, candidate := range supported {
		if platform == candidate {
			return
		}
	}
	panic(fmt.Sprintf("the %s master key algorithm is not available on the %s platform", algorithm, platform))
}

// requireInquiryNumber panics if inquiryNumber exceeds the digit count an
// algorithm's input format allows.
func requireInquiryNumber(inquiryNumber, maxValue uint64) {
	if inquiryNumber > maxValue {
		panic(fmt.Sprintf("inquiry number %d exceeds the maximum of %d", inquiryNumber, maxValue))
	}
}

// requireDate panics if day or month is out of its calendar range. This is
// a loose check (it does not reject e.g. February 30th); the original
// console software performs the same loose validation.
func requireDate(day, month uint8) {
	if day == 0 || day > 31 {
		panic(fmt.Sprintf("invalid day: %d", day))
	}
	if month == 0 || month > 12 {
		panic(fmt.Sprintf("invalid month: %d", month))
	}
}

// calculateMasterKeySharedV1AndV2 is the HMAC-SHA256 core shared by the v1
// and v2 algorithms: an HMAC over the zero-padded month, day and inquiry
// number, truncated to the first four bytes and reduced to five digits.
func calculateMasterKeySharedV1AndV2(hmacKey [32]byte, inquiryNumber uint64, day, month uint8, bigEndian bool) uint32 {
	input := fmt.Sprintf("%02d%02d%010d", month, day, inquiryNumber)

	mac := hmac.New(sha256.New, hmacKey[:])
	mac.Write([]byte(input))
	hash := mac.Sum(nil)[0:4]

	var output uint32
	if bigEndian {
		output = binary.BigEndian.Uint32(hash)
	} else {
		output = binary.LittleEndian.Uint32(hash)
	}

	return output % 100000
}
