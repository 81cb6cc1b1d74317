package wad

import (
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// SeekCertificateChain seeks s to the start of the certificate chain.
func (w *InstallableWad) SeekCertificateChain(s io.Seeker) error {
	_, err := s.Seek(int64(installableWadHeaderSize), io.SeekStart)
	return err
}

// CertificateChainView creates a View into the certificate chain stored
// inside the WAD stream.
func (w *InstallableWad) CertificateChainView(s io.ReadWriteSeeker) (*stream.View, error) {
	if err := w.SeekCertificateChain(s); err != nil {
		return nil, err
	}
	return stream.NewView(s, int64(w.CertificateChainSize))
}

// CertificateChain parses the certificate chain stored inside the WAD
// stream.
func (w *InstallableWad) CertificateChain(s io.ReadWriteSeeker) (*niiebla.CertificateChain, error) {
	if err := w.SeekCertificateChain(s); err != nil {
		return nil, err
	}
	return niiebla.ParseCertificateChain(s, installableWadNumberOfCertificatesStored)
}

// WriteCertificateChainRaw writes a new certificate chain into the stream
// of the WAD.
//
// Data after the certificate chain (ticket, title metadata and content
// blobs) may be left unaligned or overwritten; WriteCertificateChainSafe
// or WriteCertificateChainSafeFile are usually preferable.
func (w *InstallableWad) WriteCertificateChainRaw(s io.ReadWriteSeeker, newChain *niiebla.CertificateChain) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	if err := w.SeekCertificateChain(pin); err != nil {
		return err
	}

	if err := newChain.Serialize(pin); err != nil {
		return err
	}
	if err := pin.AlignZeroed(installableWadSectionBoundary); err != nil {
		return err
	}

	w.CertificateChainSize = newChain.Size()

	if _, err := pin.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return w.Dump(pin)
}

// WriteCertificateChainSafe is like WriteCertificateChainRaw but makes an
// in-memory copy of all the trailing data to realign it afterward.
func (w *InstallableWad) WriteCertificateChainSafe(
	s io.ReadWriteSeeker,
	newChain *niiebla.CertificateChain,
	ticket *niiebla.PreSwitchTicket,
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

	if err := w.WriteCertificateChainRaw(pin, newChain); err != nil {
		return err
	}
	if err := w.WriteTicketRaw(pin, ticket); err != nil {
		return err
	}
	if err := w.WriteTitleMetadataRaw(pin, titleMetadata); err != nil {
		return err
	}

	return w.restoreContents(pin, titleMetadata, contents)
}

// WriteCertificateChainSafeFile is like WriteCertificateChainSafe but will
// also trim the size of the file to avoid trailing garbage or useless
// zeroes.
func (w *InstallableWad) WriteCertificateChainSafeFile(
	file interface {
		io.ReadWriteSeeker
		Truncator
	},
	newChain *niiebla.CertificateChain,
	ticket *niiebla.PreSwitchTicket,
	titleMetadata *niiebla.TitleMetadata,
) error {
	if err := w.WriteCertificateChainSafe(file, newChain, ticket, titleMetadata); err != nil {
		return err
	}

	newFileSize, err := stream.StreamPosition(file)
	if err != nil {
		return err
	}
	return file.Truncate(newFileSize)
}
