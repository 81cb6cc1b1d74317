package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteU8 writes a single byte.
func WriteU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

// WriteU16 writes a big-endian u16.
func WriteU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteU32 writes a big-endian u32.
func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteU32LE writes a little-endian u32.
func WriteU32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteU64 writes a big-endian u64.
func WriteU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteBool writes a bool as a single 0/1 byte.
func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteU8(w, 1)
	}
	return WriteU8(w, 0)
}

// WriteZeroed writes n zero bytes.
func WriteZeroed(w io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := w.Write(make([]byte, n))
	return err
}

// WriteBytesPadded writes buf followed by zero bytes so the total written
// length equals padding. It is an error for buf to be longer than padding.
func WriteBytesPadded(w io.Writer, buf []byte, padding int) error {
	if len(buf) > padding {
		return fmt.Errorf("buffer of %d bytes does not fit in a %d byte padded field", len(buf), padding)
	}
	if _, err := w.Write(buf); err != nil {
		return err
	}
	return WriteZeroed(w, padding-len(buf))
}

// WriteStringPadded writes s as bytes followed by zero bytes so the total
// written length equals padding.
func WriteStringPadded(w io.Writer, s string, padding int) error {
	return WriteBytesPadded(w, []byte(s), padding)
}
