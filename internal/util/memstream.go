// Package util holds small shared helpers that don't belong to any single
// manifest package.
package util

import (
	"fmt"
	"io"
)

// MemStream is an in-memory io.ReadWriteSeeker that also supports
// truncation, modeled on the cursor/buffer composition in
// lib/format/zip/reader.go's EntryReader but backed by a plain growable
// byte slice instead of a lazily-decompressed one. It backs every test
// fixture in this module and is a reasonable stand-in for *os.File when a
// caller wants to build a WAD fully in memory before flushing it to disk.
type MemStream struct {
	buf []byte
	pos int64
}

// NewMemStream creates an empty MemStream.
func NewMemStream() *MemStream {
	return &MemStream{}
}

// NewMemStreamFromBytes creates a MemStream seeded with a copy of data.
func NewMemStreamFromBytes(data []byte) *MemStream {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MemStream{buf: buf}
}

// Bytes returns the current contents of the stream.
func (m *MemStream) Bytes() []byte {
	return m.buf
}

func (m *MemStream) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemStream) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:end], p)
	m.pos = end
	return n, nil
}

func (m *MemStream) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.pos + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("seek to negative position %d", target)
	}
	m.pos = target
	return m.pos, nil
}

// Truncate resizes the stream to size bytes, zero-filling any growth.
func (m *MemStream) Truncate(size int64) error {
	if size < 0 {
		return fmt.Errorf("truncate to negative size %d", size)
	}
	if size <= int64(len(m.buf)) {
		m.buf = m.buf[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, m.buf)
	m.buf = grown
	return nil
}

// Close is a no-op, satisfying io.Closer for callers that need one.
func (m *MemStream) Close() error { return nil }
