package stream

import "io"

// RecallView is a View that remembers the stream position it was created
// at and can put it back. Go has no destructors, so unlike the type this is
// modeled on, the reset happens on an explicit Close rather than implicitly
// on drop — callers that want the automatic-reset behavior should defer
// Close.
type RecallView struct {
	*View
	originalPosition int64
}

// NewRecallView wraps s in a RecallView of the given length.
func NewRecallView(s io.ReadWriteSeeker, length int64) (*RecallView, error) {
	v, err := NewView(s, length)
	if err != nil {
		return nil, err
	}
	originalPosition, err := v.relativePosition()
	if err != nil {
		return nil, err
	}
	return &RecallView{View: v, originalPosition: originalPosition}, nil
}

// ResetPosition seeks the underlying view back to the position it had when
// the RecallView was constructed.
func (r *RecallView) ResetPosition() error {
	_, err := r.View.Seek(r.originalPosition, io.SeekStart)
	return err
}

// Close resets the position and satisfies io.Closer so RecallView can be
// used with defer.
func (r *RecallView) Close() error {
	return r.ResetPosition()
}

// IntoViewNoReset returns the wrapped View without resetting its position.
func (r *RecallView) IntoViewNoReset() *View {
	return r.View
}

// IntoInnerNoReset returns the wrapped stream without resetting its
// position.
func (r *RecallView) IntoInnerNoReset() io.ReadWriteSeeker {
	return r.View.IntoInner()
}
