package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/zelzip/niiebla-go/internal/util"
)

func testKeyIV() ([16]byte, [16]byte) {
	var key, iv [16]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range iv {
		iv[i] = byte(0xA0 + i)
	}
	return key, iv
}

func TestCBCStreamRoundTrip(t *testing.T) {
	key, iv := testKeyIV()
	plaintext := bytes.Repeat([]byte("0123456789ABCDEF"), 4) // 64 bytes, 4 blocks

	backing := util.NewMemStream()
	writer := NewCBCStream(backing, key, iv)
	if _, err := writer.Write(plaintext); err != nil {
		t.Fatal(err)
	}

	if _, err := backing.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	reader := NewCBCStream(backing, key, iv)
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(plaintext))
	n, err := reader.Read(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(plaintext) {
		t.Fatalf("expected to read %d bytes, got %d", len(plaintext), n)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %x want %x", got, plaintext)
	}
}

func TestCBCStreamReadAtUnalignedOffset(t *testing.T) {
	key, iv := testKeyIV()
	plaintext := bytes.Repeat([]byte("0123456789ABCDEF"), 4)

	backing := util.NewMemStream()
	writer := NewCBCStream(backing, key, iv)
	if _, err := writer.Write(plaintext); err != nil {
		t.Fatal(err)
	}

	reader := NewCBCStream(backing, key, iv)
	if _, err := reader.Seek(20, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 10)
	n, err := reader.Read(got)
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Fatalf("expected 10 bytes read, got %d", n)
	}
	if !bytes.Equal(got, plaintext[20:30]) {
		t.Fatalf("unaligned read mismatch: got %x want %x", got, plaintext[20:30])
	}
}

func TestCBCStreamWriteRejectsUnalignedLength(t *testing.T) {
	key, iv := testKeyIV()
	backing := util.NewMemStream()
	writer := NewCBCStream(backing, key, iv)

	if _, err := writer.Write(make([]byte, 17)); err == nil {
		t.Fatal("expected an error writing a non-block-aligned buffer")
	}
}
