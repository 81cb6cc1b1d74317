package util

import (
	"bytes"
	"io"
	"testing"
)

func TestMemStreamWriteGrowsBuffer(t *testing.T) {
	m := NewMemStream()
	if _, err := m.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Bytes(), []byte{1, 2, 3}) {
		t.Fatalf("unexpected contents: %v", m.Bytes())
	}
}

func TestMemStreamSeekAndReadEOF(t *testing.T) {
	m := NewMemStreamFromBytes([]byte{1, 2, 3})
	if _, err := m.Seek(3, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 1)
	if _, err := m.Read(buf); err != io.EOF {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestMemStreamSeekNegativeFails(t *testing.T) {
	m := NewMemStreamFromBytes([]byte{1, 2, 3})
	if _, err := m.Seek(-1, io.SeekStart); err == nil {
		t.Fatal("expected an error seeking to a negative position")
	}
}

func TestMemStreamTruncateShrinksAndGrows(t *testing.T) {
	m := NewMemStreamFromBytes([]byte{1, 2, 3, 4})
	if err := m.Truncate(2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Bytes(), []byte{1, 2}) {
		t.Fatalf("unexpected contents after shrink: %v", m.Bytes())
	}
	if err := m.Truncate(4); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m.Bytes(), []byte{1, 2, 0, 0}) {
		t.Fatalf("unexpected contents after grow: %v", m.Bytes())
	}
}
