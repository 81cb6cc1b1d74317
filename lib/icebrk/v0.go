package icebrk

import (
	"fmt"
	"hash/crc32"
	"math/bits"
)

// The v0 algorithm's CRC-32 variant isn't the IEEE one the standard library
// defaults to: it keeps IEEE's width, reflected input/output and 0xFFFFFFFF
// init, but swaps the polynomial per console family and finishes with a
// non-standard XOR-out (0xAAAA instead of 0xFFFFFFFF) before an additive
// fix-up constant. hash/crc32.Checksum always finishes with the standard
// 0xFFFFFFFF XOR-out, so the custom XOR-out is recovered by re-XORing the
// stdlib result with (0xFFFFFFFF ^ customXorOut) -- valid because XOR is its
// own inverse and both variants share init and reflection settings.
//
// The polynomials below are given in the RevEng-catalog "normal" form, the
// same convention the original source's crc crate takes (poly: 0x04C11DB7,
// refin/refout: true -- the crate reflects internally). hash/crc32.MakeTable
// has no such reflection step: it expects the polynomial already bit-reversed
// for a refin/refout algorithm, which is why crc32.IEEE is 0xedb88320, not
// 0x04C11DB7. So each normal-form polynomial is explicitly reversed with
// bits.Reverse32 before building its table.
const (
	crcXorOutWiiAndDsi   uint32 = 0xAAAA
	crcXorOutWiiUAnd3ds  uint32 = 0xAAAA
	crcAddOutWiiAndDsi   uint32 = 0x14C1
	crcAddOutWiiUAnd3ds  uint32 = 0x1657
	crcPolynomialWiiDsi  uint32 = 0x04C11DB7
	crcPolynomialWiiU3ds uint32 = 0x04C65DB7
	crcStandardXorOut    uint32 = 0xFFFFFFFF
)

var (
	crcTableWiiAndDsi  = crc32.MakeTable(bits.Reverse32(crcPolynomialWiiDsi))
	crcTableWiiUAnd3ds = crc32.MakeTable(bits.Reverse32(crcPolynomialWiiU3ds))
)

// v0CrcParameters panics if platform never shipped the v0 algorithm (the
// Switch's parental control PIN reset works differently and has no v0
// equivalent).
func v0CrcParameters(platform Platform) (*crc32.Table, uint32, uint32) {
	switch platform {
	case PlatformWii, PlatformDsi:
		return crcTableWiiAndDsi, crcXorOutWiiAndDsi, crcAddOutWiiAndDsi
	case PlatformWiiU, Platform3ds:
		return crcTableWiiUAnd3ds, crcXorOutWiiUAnd3ds, crcAddOutWiiUAnd3ds
	default:
		requirePlatform("v0", platform, PlatformWii, PlatformDsi, Platform3ds, PlatformWiiU)
		panic("unreachable")
	}
}

// CalculateV0MasterKey calculates the master key for the parental control
// using the v0 algorithm. The inquiry number cannot be bigger than 8 digits
// and the date must be valid (there are some loose checks) -- both are
// asserted rather than returned as errors, since violating them is a caller
// bug, not a recoverable runtime condition.
//
// The returned key must be presented with leading zeroes to always be 5
// digits long.
//
// Only works on Wii, DSi, 3DS (from 1.0.0 to 6.3.0) and Wii U (from 1.0.0 to
// 4.1.0); panics if platform is the Switch, which never shipped this
// algorithm.
func CalculateV0MasterKey(platform Platform, inquiryNumber uint32, day, month uint8) uint32 {
	requireInquiryNumber(uint64(inquiryNumber), 99_999_999)
	requireDate(day, month)

	table, xorOut, addOut := v0CrcParameters(platform)

	input := fmt.Sprintf("%02d%02d%04d", month, day, inquiryNumber%10000)

	checksum := crc32.Checksum([]byte(input), table) ^ (crcStandardXorOut ^ xorOut)
	checksum += addOut

	return checksum % 100000
}
