package stream

import (
	"io"
	"testing"

	"github.com/zelzip/niiebla-go/internal/util"
)

func TestPinRelativePositionAndGoToPin(t *testing.T) {
	backing := util.NewMemStreamFromBytes(make([]byte, 32))
	if _, err := backing.Seek(8, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	pin, err := NewPin(backing)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := backing.Seek(5, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}

	rel, err := pin.RelativePosition()
	if err != nil {
		t.Fatal(err)
	}
	if rel != 5 {
		t.Fatalf("expected relative position 5, got %d", rel)
	}

	if err := pin.GoToPin(); err != nil {
		t.Fatal(err)
	}
	pos, err := StreamPosition(backing)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 8 {
		t.Fatalf("expected GoToPin to restore position 8, got %d", pos)
	}
}

func TestPinSeekFromPin(t *testing.T) {
	backing := util.NewMemStreamFromBytes(make([]byte, 32))
	if _, err := backing.Seek(8, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	pin, err := NewPin(backing)
	if err != nil {
		t.Fatal(err)
	}

	pos, err := pin.SeekFromPin(10)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 18 {
		t.Fatalf("expected SeekFromPin(10) to land at 18, got %d", pos)
	}
}

func TestPinAlignPosition(t *testing.T) {
	backing := util.NewMemStreamFromBytes(make([]byte, 64))
	if _, err := backing.Seek(4, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	pin, err := NewPin(backing)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := backing.Seek(5, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}

	if err := pin.AlignPosition(16); err != nil {
		t.Fatal(err)
	}

	rel, err := pin.RelativePosition()
	if err != nil {
		t.Fatal(err)
	}
	if rel != 16 {
		t.Fatalf("expected relative position aligned to 16, got %d", rel)
	}
}

func TestPinAlignZeroedWritesPadding(t *testing.T) {
	backing := util.NewMemStreamFromBytes(make([]byte, 64))

	pin, err := NewPin(backing)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := backing.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	if err := pin.AlignZeroed(16); err != nil {
		t.Fatal(err)
	}

	rel, err := pin.RelativePosition()
	if err != nil {
		t.Fatal(err)
	}
	if rel != 16 {
		t.Fatalf("expected relative position 16 after align-zeroed padding, got %d", rel)
	}
}
