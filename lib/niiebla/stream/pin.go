package stream

import "io"

// Pin wraps a seekable stream and remembers the position it had when the pin
// was created, exposing a handful of operations relative to that position.
type Pin struct {
	stream        io.ReadWriteSeeker
	startPosition int64
}

// NewPin creates a Pin over s at its current position.
func NewPin(s io.ReadWriteSeeker) (*Pin, error) {
	start, err := StreamPosition(s)
	if err != nil {
		return nil, err
	}
	return &Pin{stream: s, startPosition: start}, nil
}

// IntoInner returns the wrapped stream.
func (p *Pin) IntoInner() io.ReadWriteSeeker {
	return p.stream
}

// GoToPin seeks back to the position the pin was created at.
func (p *Pin) GoToPin() error {
	_, err := p.stream.Seek(p.startPosition, io.SeekStart)
	return err
}

// RelativePosition returns the current position minus the pinned position.
func (p *Pin) RelativePosition() (int64, error) {
	pos, err := StreamPosition(p.stream)
	if err != nil {
		return 0, err
	}
	return pos - p.startPosition, nil
}

// SeekFromPin seeks to the pinned position plus step.
func (p *Pin) SeekFromPin(step int64) (int64, error) {
	return p.stream.Seek(p.startPosition+step, io.SeekStart)
}

// AlignPosition seeks forward so the position relative to the pin is a
// multiple of boundary.
func (p *Pin) AlignPosition(boundary uint64) error {
	rel, err := p.RelativePosition()
	if err != nil {
		return err
	}
	aligned := AlignToBoundary(uint64(rel), boundary)
	_, err = p.stream.Seek(p.startPosition+int64(aligned), io.SeekStart)
	return err
}

// AlignZeroed writes zero bytes so the position relative to the pin becomes
// a multiple of boundary.
func (p *Pin) AlignZeroed(boundary uint64) error {
	rel, err := p.RelativePosition()
	if err != nil {
		return err
	}
	aligned := AlignToBoundary(uint64(rel), boundary)
	return WriteZeroed(p.stream, int(aligned-uint64(rel)))
}

// Read implements io.Reader.
func (p *Pin) Read(buf []byte) (int, error) { return p.stream.Read(buf) }

// Write implements io.Writer.
func (p *Pin) Write(buf []byte) (int, error) { return p.stream.Write(buf) }

// Seek implements io.Seeker.
func (p *Pin) Seek(offset int64, whence int) (int64, error) {
	return p.stream.Seek(offset, whence)
}
