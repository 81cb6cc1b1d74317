package niiebla

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// WiiCommonKeyKind identifies which of the Wii's common AES-128 encryption
// keys a ticket's title key is encrypted under.
type WiiCommonKeyKind uint8

const (
	// WiiCommonKeyNormal is the key used by most retail consoles.
	WiiCommonKeyNormal WiiCommonKeyKind = iota
	// WiiCommonKeyKorean is the key used on consoles with Korea set as
	// their internal region (KOR).
	WiiCommonKeyKorean
	// WiiCommonKeyWiiUvWii is the key used by the virtual Wii console
	// (vWii) inside the Wii U.
	WiiCommonKeyWiiUvWii
)

// UnknownCommonKeyIndexError is returned when a common-key index byte does
// not match any known WiiCommonKeyKind.
type UnknownCommonKeyIndexError struct {
	Index uint8
}

func (e *UnknownCommonKeyIndexError) Error() string {
	return fmt.Sprintf("unknown common key index: %d", e.Index)
}

// NewWiiCommonKeyKind looks up a WiiCommonKeyKind by its on-disk index.
func NewWiiCommonKeyKind(index uint8) (WiiCommonKeyKind, error) {
	switch index {
	case 0:
		return WiiCommonKeyNormal, nil
	case 1:
		return WiiCommonKeyKorean, nil
	case 2:
		return WiiCommonKeyWiiUvWii, nil
	default:
		return 0, &UnknownCommonKeyIndexError{Index: index}
	}
}

var wiiCommonKeyBytes = map[WiiCommonKeyKind][16]byte{
	WiiCommonKeyNormal: {
		0xeb, 0xe4, 0x2a, 0x22, 0x5e, 0x85, 0x93, 0xe4, 0x48, 0xd9, 0xc5, 0x45, 0x73, 0x81,
		0xaa, 0xf7,
	},
	WiiCommonKeyKorean: {
		0x63, 0xb8, 0x2b, 0xb4, 0xf4, 0x61, 0x4e, 0x2e, 0x13, 0xf2, 0xfe, 0xfb, 0xba, 0x4c,
		0x9b, 0x7e,
	},
	WiiCommonKeyWiiUvWii: {
		0x30, 0xbf, 0xc7, 0x6e, 0x7c, 0x19, 0xaf, 0xbb, 0x23, 0x16, 0x33, 0x30, 0xce, 0xd7,
		0xc2, 0x8d,
	},
}

// Bytes returns the raw 16-byte AES key for this kind.
func (k WiiCommonKeyKind) Bytes() [16]byte {
	return wiiCommonKeyBytes[k]
}

// DumpIndex writes this kind's on-disk index byte.
func (k WiiCommonKeyKind) DumpIndex(w io.Writer) error {
	return stream.WriteU8(w, uint8(k))
}
