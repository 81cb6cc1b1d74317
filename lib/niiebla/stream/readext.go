package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// StreamPosition returns the current offset of s, equivalent to
// s.Seek(0, io.SeekCurrent) but without the SeekFrom boilerplate at call
// sites.
func StreamPosition(s io.Seeker) (int64, error) {
	return s.Seek(0, io.SeekCurrent)
}

// ReadU8 reads a single byte.
func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a big-endian u16.
func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU16LE reads a little-endian u16.
func ReadU16LE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a big-endian u32.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadU32LE reads a little-endian u32.
func ReadU32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadU64 reads a big-endian u64.
func ReadU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// ReadBool reads a single byte and interprets it as a bool. Any byte value
// other than 0 or 1 is an error.
func ReadBool(r io.Reader) (bool, error) {
	value, err := ReadU8(r)
	if err != nil {
		return false, err
	}
	switch value {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("cannot convert byte %d into a bool", value)
	}
}

// ReadExactly reads exactly len(buf) bytes, failing on a short read.
func ReadExactly(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

// readBestEffort reads up to len(buf) bytes, filling as much of buf as the
// reader has available and leaving the rest of buf untouched (it is assumed
// to already be zeroed). Unlike io.ReadFull it does not fail on EOF; this
// matches the tolerant single-call std::io::Read::read used by the adapters
// in this package.
func readBestEffort(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil
	}
	return err
}
