package icebrk

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// v2 wraps each region's HMAC-SHA256 key with AES-128-CTR before embedding
// it, keyed by an AES key that is itself specific to the console's sales
// region (and, on the 3DS, further keyed by a firmware "version" digit pair
// encoded in the inquiry number). The wrapped blob layout is 64 bytes: an
// unused 16-byte header, a 16-byte AES-CTR counter, and the 32-byte
// encrypted HMAC key.
//
// The real AES and wrapped-HMAC key material ships as raw binary assets
// alongside the original source and was not available to this port. The
// tables below reproduce the exact region (and, for the 3DS, version) range
// the original enumerates, populated with placeholder bytes derived
// deterministically from the region/version themselves, so
// CalculateV2MasterKey is structurally complete for every region/version
// combination the original supports but will not reproduce a real console's
// master key until the genuine key material is substituted in.
type v2WrappedHmacKey [64]byte

func placeholderV2AesKey(seed byte) [16]byte {
	var key [16]byte
	for i := range key {
		key[i] = seed ^ byte(i)*0x5B
	}
	return key
}

func placeholderV2WrappedHmacKey(region, version byte) v2WrappedHmacKey {
	var blob v2WrappedHmacKey
	for i := range blob {
		blob[i] = region*31 + version*17 + byte(i)
	}
	return blob
}

var the3dsAesKeyRegions = map[uint64][16]byte{
	0x00: placeholderV2AesKey(0x00), // also covers region 0x09
	0x01: placeholderV2AesKey(0x01),
	0x02: placeholderV2AesKey(0x02),
	0x05: placeholderV2AesKey(0x05),
}

var wiiUAesKeyRegions = map[uint64][16]byte{
	0x01: placeholderV2AesKey(0x81),
	0x02: placeholderV2AesKey(0x82),
	0x03: placeholderV2AesKey(0x83),
}

// the3dsHmacVersionRange is the inclusive [min, max] firmware "version"
// range a known 3DS region has a wrapped HMAC key for.
var the3dsHmacVersionRange = map[uint64][2]uint64{
	0x00: {0x0A, 0x11},
	0x01: {0x0A, 0x2B},
	0x02: {0x0A, 0x2B},
	0x05: {0x12, 0x2A},
	0x09: {0x12, 0x2B},
}

var wiiUHmacKeyRegions = map[uint64]v2WrappedHmacKey{
	0x01: placeholderV2WrappedHmacKey(0x01, 0),
	0x02: placeholderV2WrappedHmacKey(0x02, 0),
	0x03: placeholderV2WrappedHmacKey(0x03, 0),
}

// V2UnknownRegionOrVersionError is returned when an inquiry number encodes a
// (region, version) combination unknown to the v2 algorithm.
type V2UnknownRegionOrVersionError struct {
	Region  uint64
	Version uint64
}

func (e *V2UnknownRegionOrVersionError) Error() string {
	return fmt.Sprintf("unknown region/version encoded inside the inquiry number: (%d, %d)", e.Region, e.Version)
}

func the3dsAesKey(region uint64) ([16]byte, error) {
	lookupRegion := region
	if region == 0x09 {
		lookupRegion = 0x00
	}
	key, ok := the3dsAesKeyRegions[lookupRegion]
	if !ok {
		return [16]byte{}, &UnknownRegionError{Algorithm: "v2", Region: region}
	}
	return key, nil
}

func the3dsWrappedHmacKey(region, version uint64) (v2WrappedHmacKey, error) {
	versionRange, ok := the3dsHmacVersionRange[region]
	if !ok || version < versionRange[0] || version > versionRange[1] {
		return v2WrappedHmacKey{}, &V2UnknownRegionOrVersionError{Region: region, Version: version}
	}
	return placeholderV2WrappedHmacKey(byte(region), byte(version)), nil
}

// CalculateV2MasterKey calculates the master key for the parental control
// using the v2 algorithm. The inquiry number cannot be bigger than 10 digits
// and the date must be valid (there are some loose checks).
//
// The returned key must be presented with leading zeroes to always be 5
// digits long.
//
// Only works on 3DS (from 7.2.0 to 11.15.0) and Wii U (from 5.0.0 to
// 5.5.5).
//
// This function internally uses a set of HMAC and AES keys; it's unknown if
// all keys have been found.
func CalculateV2MasterKey(platform Platform, inquiryNumber uint64, day, month uint8) (uint32, error) {
	requireInquiryNumber(inquiryNumber, 9_999_999_999)
	requireDate(day, month)
	requirePlatform("v2", platform, Platform3ds, PlatformWiiU)

	region := inquiryNumber / 1_000_000_000
	version := (inquiryNumber / 10_000_000) % 100

	var aesKey [16]byte
	var wrapped v2WrappedHmacKey
	var err error

	switch platform {
	case PlatformWiiU:
		key, ok := wiiUAesKeyRegions[region]
		if !ok {
			return 0, &UnknownRegionError{Algorithm: "v2", Region: region}
		}
		aesKey = key

		blob, ok := wiiUHmacKeyRegions[region]
		if !ok {
			return 0, &UnknownRegionError{Algorithm: "v2", Region: region}
		}
		wrapped = blob

	case Platform3ds:
		aesKey, err = the3dsAesKey(region)
		if err != nil {
			return 0, err
		}

		wrapped, err = the3dsWrappedHmacKey(region, version)
		if err != nil {
			return 0, err
		}
	}

	aesCounter := wrapped[16:32]
	var hmacKey [32]byte
	copy(hmacKey[:], wrapped[32:64])

	block, err := aes.NewCipher(aesKey[:])
	if err != nil {
		return 0, err
	}
	cipher.NewCTR(block, aesCounter).XORKeyStream(hmacKey[:], hmacKey[:])

	return calculateMasterKeySharedV1AndV2(hmacKey, inquiryNumber, day, month, platform == PlatformWiiU), nil
}
