package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/zelzip/niiebla-go/internal/util"
)

func TestViewReadClipsToLength(t *testing.T) {
	backing := util.NewMemStreamFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if _, err := backing.Seek(2, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	view, err := NewView(backing, 4)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 10)
	n, err := view.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("expected clipped read of 4 bytes, got %d", n)
	}
	if !bytes.Equal(buf[:4], []byte{3, 4, 5, 6}) {
		t.Fatalf("unexpected content: %v", buf[:4])
	}
}

func TestViewWriteClipsToLength(t *testing.T) {
	backing := util.NewMemStreamFromBytes(make([]byte, 10))

	view, err := NewView(backing, 4)
	if err != nil {
		t.Fatal(err)
	}

	n, err := view.Write([]byte{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("expected clipped write of 4 bytes, got %d", n)
	}
	if !bytes.Equal(backing.Bytes()[:4], []byte{1, 2, 3, 4}) {
		t.Fatalf("unexpected content: %v", backing.Bytes()[:4])
	}
}

func TestViewSeekEndIsRelativeToLastByte(t *testing.T) {
	backing := util.NewMemStreamFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	view, err := NewView(backing, 4)
	if err != nil {
		t.Fatal(err)
	}

	pos, err := view.Seek(0, io.SeekEnd)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 3 {
		t.Fatalf("expected relative position 3 (last byte of a 4-byte view), got %d", pos)
	}
}

func TestViewSeekNegativeFails(t *testing.T) {
	backing := util.NewMemStreamFromBytes([]byte{1, 2, 3, 4})

	view, err := NewView(backing, 4)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := view.Seek(-1, io.SeekCurrent); err == nil {
		t.Fatal("expected an error seeking before the view's start")
	}
}

func TestRecallViewResetsPositionOnClose(t *testing.T) {
	backing := util.NewMemStreamFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	func() {
		rv, err := NewRecallView(backing, 5)
		if err != nil {
			t.Fatal(err)
		}
		defer rv.Close()

		buf := make([]byte, 5)
		if _, err := rv.Read(buf); err != nil {
			t.Fatal(err)
		}
	}()

	b, err := ReadU8(backing)
	if err != nil {
		t.Fatal(err)
	}
	if b != 1 {
		t.Fatalf("expected position reset to 0, read byte %d", b)
	}
}
