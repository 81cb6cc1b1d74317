package niiebla

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// TitleId is a 64-bit value used to uniquely identify titles on Nintendo
// consoles. It is split into a higher half (the title's category/platform)
// and a lower half (the title's unique identifier within that category).
type TitleId uint64

// NewTitleIDFromHalves builds a TitleId from its higher and lower halves.
func NewTitleIDFromHalves(higherHalf, lowerHalf uint32) TitleId {
	return TitleId(uint64(higherHalf)<<32 | uint64(lowerHalf))
}

// HigherHalf returns the upper 32 bits of the title ID.
func (t TitleId) HigherHalf() uint32 {
	return uint32(uint64(t) >> 32)
}

// LowerHalf returns the lower 32 bits of the title ID.
func (t TitleId) LowerHalf() uint32 {
	return uint32(uint64(t) & 0xFFFFFFFF)
}

// WithLowerHalf returns a copy of t with its lower half replaced.
func (t TitleId) WithLowerHalf(lowerHalf uint32) TitleId {
	return NewTitleIDFromHalves(t.HigherHalf(), lowerHalf)
}

// WithHigherHalf returns a copy of t with its higher half replaced.
func (t TitleId) WithHigherHalf(higherHalf uint32) TitleId {
	return NewTitleIDFromHalves(higherHalf, t.LowerHalf())
}

// Serialize writes the title ID as a big-endian u64.
func (t TitleId) Serialize(w io.Writer) error {
	return stream.WriteU64(w, uint64(t))
}

// String formats the title ID as lowercase-hex halves separated by a dash,
// e.g. "4a4132bc-48414741".
func (t TitleId) String() string {
	return fmt.Sprintf("%08x-%08x", t.HigherHalf(), t.LowerHalf())
}

// DisplayASCII formats the title ID like String, but renders the lower half
// as ASCII text when every byte of it is alphanumeric, e.g. "4a4132bc-HAGA".
// It falls back to String's hex rendering otherwise.
func (t TitleId) DisplayASCII() string {
	lowerHalf := t.LowerHalf()
	bytes := []byte{
		byte(lowerHalf >> 24),
		byte(lowerHalf >> 16),
		byte(lowerHalf >> 8),
		byte(lowerHalf),
	}

	for _, b := range bytes {
		if !isASCIIAlphanumeric(b) {
			return t.String()
		}
	}

	return fmt.Sprintf("%08x-%s", t.HigherHalf(), string(bytes))
}

func isASCIIAlphanumeric(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	default:
		return false
	}
}

// DisplayWiiPlatform formats the title ID like String, but renders
// well-known system-category IDs (BOOT2, the System Menu, BC/MIOS, IOS
// versions) with their familiar names.
func (t TitleId) DisplayWiiPlatform() string {
	if t.HigherHalf() != 0x00000001 {
		return t.String()
	}

	switch t.LowerHalf() {
	case 0x00000001:
		return "BOOT2"
	case 0x00000002:
		return "System Menu"
	case 0x00000100:
		return "BC"
	case 0x00000101:
		return "MIOS"
	case 0x00000200:
		return "BC-NAND"
	case 0x00000201:
		return "BC-WFS"
	default:
		return fmt.Sprintf("IOS%d (Wii)", t.LowerHalf())
	}
}
