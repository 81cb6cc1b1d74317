// Package wad implements the binary file format used by Nintendo to store
// titles without a disc, both the kind that can be installed into the
// system (InstallableWad) and the top-level format-detection wrapper (Wad).
package wad

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

var installableWadMagicNumbers = [8]byte{0x00, 0x00, 0x00, 0x20, 0x49, 0x73, 0x00, 0x00}

// Wad is the top-level sum type of the different kinds of WAD files known
// to have been used on the Nintendo Wii.
type Wad struct {
	// Installable is set when the WAD stores the data needed to install
	// a title into the system.
	Installable *InstallableWad

	// IsBackUp is true for the kind of WAD used to store encrypted data
	// safely on the SD card, used for channels and downloadable content.
	//
	// NOTE: the backup WAD layout itself is not yet implemented.
	IsBackUp bool
}

// UnknownWadFormatError is returned when a stream does not match any known
// WAD format's magic number.
type UnknownWadFormatError struct{}

func (e *UnknownWadFormatError) Error() string { return "unknown WAD format" }

// UndesiredWadFormatError is returned by NewInstallable when the stream
// parses as a WAD, but not as the installable kind.
type UndesiredWadFormatError struct{}

func (e *UndesiredWadFormatError) Error() string { return "the found WAD format was not the wanted one" }

// New parses a Wad by sniffing its magic number. The stream is rewound to
// its original position before returning, successfully or not.
func New(s io.ReadWriteSeeker) (*Wad, error) {
	start, err := stream.StreamPosition(s)
	if err != nil {
		return nil, err
	}

	var magicNumbers [8]byte
	if err := stream.ReadExactly(s, magicNumbers[:]); err != nil {
		return nil, err
	}

	if _, err := s.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}

	boot2MagicNumbers := installableWadMagicNumbers
	boot2MagicNumbers[4], boot2MagicNumbers[5] = 'i', 'b'

	if magicNumbers == installableWadMagicNumbers || magicNumbers == boot2MagicNumbers {
		installable, err := parseInstallableWad(s)
		if err != nil {
			return nil, err
		}
		return &Wad{Installable: installable}, nil
	}

	return nil, &UnknownWadFormatError{}
}

// NewInstallable is like New but treats any WAD format other than the
// installable kind as an error.
func NewInstallable(s io.ReadWriteSeeker) (*InstallableWad, error) {
	w, err := New(s)
	if err != nil {
		return nil, err
	}
	if w.Installable == nil {
		return nil, &UndesiredWadFormatError{}
	}
	return w.Installable, nil
}

// InstallableWad is a WAD that stores a title that can be installed into
// the system.
type InstallableWad struct {
	HeaderSize uint32

	Kind InstallableWadKind

	CertificateChainSize uint32
	TicketSize           uint32
	TitleMetadataSize    uint32
	ContentSize          uint32
	FooterSize           uint32
}

const (
	installableWadHeaderSize                 uint64 = 64
	installableWadSectionBoundary            uint64 = 64
	installableWadNumberOfCertificatesStored int    = 3
)

func alignU64(value uint32) uint64 {
	return stream.AlignToBoundary(uint64(value), installableWadSectionBoundary)
}

// UnknownInstallableWadKindError is returned when the 2-byte installation
// kind tag does not match any known InstallableWadKind.
type UnknownInstallableWadKindError struct{ Tag [2]byte }

func (e *UnknownInstallableWadKindError) Error() string {
	return fmt.Sprintf("unknown installable wad type: %q", e.Tag[:])
}

// UnknownWadFormatVersionError is returned when an installable WAD's
// format_version field is not zero.
type UnknownWadFormatVersionError struct{ Version uint16 }

func (e *UnknownWadFormatVersionError) Error() string {
	return fmt.Sprintf("unknown format version: %d", e.Version)
}

// parseInstallableWad parses the 32-byte installable WAD header. The
// stream must already be sniffed (its magic number matched) by the caller.
func parseInstallableWad(s io.ReadWriteSeeker) (*InstallableWad, error) {
	headerSize, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}

	kind, err := parseInstallableWadKind(s)
	if err != nil {
		return nil, err
	}

	formatVersion, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}
	if formatVersion != 0 {
		return nil, &UnknownWadFormatVersionError{Version: formatVersion}
	}

	certificateChainSize, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}

	// Skip four reserved bytes
	if _, err := s.Seek(4, io.SeekCurrent); err != nil {
		return nil, err
	}

	ticketSize, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	titleMetadataSize, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	contentSize, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	footerSize, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}

	return &InstallableWad{
		HeaderSize:           headerSize,
		Kind:                 kind,
		CertificateChainSize: certificateChainSize,
		TicketSize:           ticketSize,
		TitleMetadataSize:    titleMetadataSize,
		ContentSize:          contentSize,
		FooterSize:           footerSize,
	}, nil
}

// Dump writes the WAD header to s.
func (w *InstallableWad) Dump(s io.ReadWriteSeeker) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	if err := stream.WriteU32(pin, 32); err != nil {
		return err
	}
	kindTag := "Is"
	if w.Kind == InstallableWadKindBoot2 {
		kindTag = "ib"
	}
	if _, err := pin.Write([]byte(kindTag)); err != nil {
		return err
	}
	if err := stream.WriteU16(pin, 0); err != nil {
		return err
	}
	if err := stream.WriteU32(pin, w.CertificateChainSize); err != nil {
		return err
	}
	if err := stream.WriteZeroed(pin, 4); err != nil {
		return err
	}

	if err := stream.WriteU32(pin, w.TicketSize); err != nil {
		return err
	}
	if err := stream.WriteU32(pin, w.TitleMetadataSize); err != nil {
		return err
	}
	if err := stream.WriteU32(pin, w.ContentSize); err != nil {
		return err
	}
	if err := stream.WriteU32(pin, w.FooterSize); err != nil {
		return err
	}

	return pin.AlignZeroed(installableWadSectionBoundary)
}

// InstallableWadKind is a way a WAD can install a title.
type InstallableWadKind int

const (
	// InstallableWadKindNormal installs the title as usual.
	InstallableWadKindNormal InstallableWadKind = iota

	// InstallableWadKindBoot2 marks the title as a version of the Wii's
	// boot2 bootloader.
	InstallableWadKindBoot2
)

func parseInstallableWadKind(r io.Reader) (InstallableWadKind, error) {
	var tag [2]byte
	if err := stream.ReadExactly(r, tag[:]); err != nil {
		return 0, err
	}

	switch string(tag[:]) {
	case "Is":
		return InstallableWadKindNormal, nil
	case "ib":
		return InstallableWadKindBoot2, nil
	default:
		return 0, &UnknownInstallableWadKindError{Tag: tag}
	}
}

// contentsStore holds the raw (still encrypted) bytes of every content entry
// from a given physical position onward, captured before a section rewrite
// shifts their offsets, so they can be rewritten unchanged afterward.
type contentsStore struct {
	contents                      [][]byte
	firstContentPhysicalPosition int
}

// storeContents reads the ciphertext of every content entry starting at
// firstContentPhysicalPosition into memory, without decrypting it, returning
// nil if there is nothing to capture.
func (w *InstallableWad) storeContents(
	s io.ReadWriteSeeker,
	titleMetadata *niiebla.TitleMetadata,
	firstContentPhysicalPosition int,
) (*contentsStore, error) {
	numberOfEntries := len(titleMetadata.ContentChunkEntries)

	if numberOfEntries == 0 || firstContentPhysicalPosition >= numberOfEntries {
		return nil, nil
	}

	allContentsBytes := make([][]byte, 0, numberOfEntries-firstContentPhysicalPosition)

	for i := firstContentPhysicalPosition; i < numberOfEntries; i++ {
		selector := titleMetadata.SelectWithPhysicalPosition(i)
		if err := w.SeekContent(s, titleMetadata, selector); err != nil {
			return nil, err
		}
		entry, err := selector.ContentEntry(titleMetadata)
		if err != nil {
			return nil, err
		}

		// The stored ciphertext is a whole number of AES blocks, which can be
		// longer than the entry's logical size.
		contentBytes := make([]byte, stream.AlignToBoundary(entry.Size, 16))
		n, err := io.ReadFull(s, contentBytes)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, err
		}
		allContentsBytes = append(allContentsBytes, contentBytes[:n])
	}

	return &contentsStore{contents: allContentsBytes, firstContentPhysicalPosition: firstContentPhysicalPosition}, nil
}

// restoreContents writes back the bytes captured by storeContents at their
// new (possibly shifted) offsets, 64-byte aligning after each one.
func (w *InstallableWad) restoreContents(
	pin *stream.Pin,
	titleMetadata *niiebla.TitleMetadata,
	contents *contentsStore,
) error {
	if contents == nil {
		return nil
	}

	if err := w.SeekContent(pin, titleMetadata, titleMetadata.SelectWithPhysicalPosition(contents.firstContentPhysicalPosition)); err != nil {
		return err
	}

	for _, bytes := range contents.contents {
		if _, err := pin.Write(bytes); err != nil {
			return err
		}
		if err := pin.AlignZeroed(installableWadSectionBoundary); err != nil {
			return err
		}
	}

	return nil
}
