package wad

import (
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// SeekTicket seeks s to the start of the ticket.
func (w *InstallableWad) SeekTicket(s io.Seeker) error {
	ticketOffset := installableWadHeaderSize + alignU64(w.CertificateChainSize)
	_, err := s.Seek(int64(ticketOffset), io.SeekStart)
	return err
}

// TicketView creates a View into the ticket stored inside the WAD stream.
func (w *InstallableWad) TicketView(s io.ReadWriteSeeker) (*stream.View, error) {
	if err := w.SeekTicket(s); err != nil {
		return nil, err
	}
	return stream.NewView(s, int64(w.TicketSize))
}

// Ticket parses the ticket stored inside the WAD stream.
func (w *InstallableWad) Ticket(s io.ReadWriteSeeker) (*niiebla.PreSwitchTicket, error) {
	if err := w.SeekTicket(s); err != nil {
		return nil, err
	}
	return niiebla.ParsePreSwitchTicket(s)
}

// WriteTicketRaw writes a new ticket into the stream of the WAD. The
// internal WAD data is updated to match the new size of the ticket.
//
// Data after the ticket (title metadata and content blobs) may be left
// unaligned or overwritten; WriteTicketSafe or WriteTicketSafeFile are
// usually preferable.
func (w *InstallableWad) WriteTicketRaw(s io.ReadWriteSeeker, newTicket *niiebla.PreSwitchTicket) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	if err := w.SeekTicket(pin); err != nil {
		return err
	}

	if err := newTicket.Serialize(pin); err != nil {
		return err
	}
	if err := pin.AlignZeroed(installableWadSectionBoundary); err != nil {
		return err
	}

	w.TicketSize = newTicket.Size()

	if _, err := pin.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return w.Dump(pin)
}

// WriteTicketSafe is like WriteTicketRaw but makes an in-memory copy of
// all the trailing data to realign it afterward.
func (w *InstallableWad) WriteTicketSafe(
	s io.ReadWriteSeeker,
	newTicket *niiebla.PreSwitchTicket,
	titleMetadata *niiebla.TitleMetadata,
) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	contents, err := w.storeContents(pin, titleMetadata, 0)
	if err != nil {
		return err
	}

	if err := w.WriteTicketRaw(pin, newTicket); err != nil {
		return err
	}
	if err := w.WriteTitleMetadataRaw(pin, titleMetadata); err != nil {
		return err
	}

	return w.restoreContents(pin, titleMetadata, contents)
}

// WriteTicketSafeFile is like WriteTicketSafe but will also trim the size
// of the file to avoid trailing garbage or useless zeroes.
func (w *InstallableWad) WriteTicketSafeFile(
	file interface {
		io.ReadWriteSeeker
		Truncator
	},
	newTicket *niiebla.PreSwitchTicket,
	titleMetadata *niiebla.TitleMetadata,
) error {
	if err := w.WriteTicketSafe(file, newTicket, titleMetadata); err != nil {
		return err
	}

	newFileSize, err := stream.StreamPosition(file)
	if err != nil {
		return err
	}
	return file.Truncate(newFileSize)
}
