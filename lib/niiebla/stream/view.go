package stream

import (
	"errors"
	"io"
)

// ErrNegativeSeek is returned when a Seek would move a View's cursor before
// its start position.
var ErrNegativeSeek = errors.New("seeked into a negative offset")

// View is a bounded sub-stream over an underlying seekable stream. Byte 0 of
// the view corresponds to the underlying stream's position at construction
// time; reads and writes are clipped to [0, Len) and return a short count
// rather than an error when the view's boundary is reached. Seeking past the
// view's bounds on the negative side is an error; seeking past the positive
// end is allowed (matching the underlying stream's own seek semantics) but
// subsequent reads/writes at that position return zero bytes.
//
// A View may permanently move the underlying stream's cursor; see RecallView
// for a variant that restores it.
type View struct {
	inner         io.ReadWriteSeeker
	startPosition int64
	Len           int64
}

// NewView wraps s in a View of the given length, which must be greater than
// zero.
func NewView(s io.ReadWriteSeeker, length int64) (*View, error) {
	if length <= 0 {
		panic("view length must be greater than zero")
	}
	start, err := StreamPosition(s)
	if err != nil {
		return nil, err
	}
	return &View{inner: s, startPosition: start, Len: length}, nil
}

// IntoInner returns the wrapped stream.
func (v *View) IntoInner() io.ReadWriteSeeker {
	return v.inner
}

func (v *View) endPosition() int64 {
	return v.startPosition + v.Len - 1
}

func (v *View) relativePosition() (int64, error) {
	pos, err := StreamPosition(v.inner)
	if err != nil {
		return 0, err
	}
	return pos - v.startPosition, nil
}

func (v *View) calcPositionFrom(position, delta int64) (int64, error) {
	newPosition := position + delta
	if newPosition < v.startPosition {
		return 0, ErrNegativeSeek
	}
	return newPosition, nil
}

// Read implements io.Reader, clipping the read to the view's bounds.
func (v *View) Read(buf []byte) (int, error) {
	rel, err := v.relativePosition()
	if err != nil {
		return 0, err
	}
	remaining := v.Len - rel
	if remaining < 0 {
		remaining = 0
	}
	n := int64(len(buf))
	if n > remaining {
		n = remaining
	}
	return v.inner.Read(buf[:n])
}

// Write implements io.Writer, clipping the write to the view's bounds.
func (v *View) Write(buf []byte) (int, error) {
	rel, err := v.relativePosition()
	if err != nil {
		return 0, err
	}
	remaining := v.Len - rel
	if remaining < 0 {
		remaining = 0
	}
	n := int64(len(buf))
	if n > remaining {
		n = remaining
	}
	return v.inner.Write(buf[:n])
}

// Seek implements io.Seeker. SeekEnd is relative to the last byte of the
// view, not one past it.
func (v *View) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		t, err := v.calcPositionFrom(v.startPosition, offset)
		if err != nil {
			return 0, err
		}
		target = t
	case io.SeekCurrent:
		pos, err := StreamPosition(v.inner)
		if err != nil {
			return 0, err
		}
		t, err := v.calcPositionFrom(pos, offset)
		if err != nil {
			return 0, err
		}
		target = t
	case io.SeekEnd:
		t, err := v.calcPositionFrom(v.endPosition(), offset)
		if err != nil {
			return 0, err
		}
		target = t
	default:
		return 0, errors.New("invalid whence")
	}

	if _, err := v.inner.Seek(target, io.SeekStart); err != nil {
		return 0, err
	}
	return v.relativePosition()
}
