package wad

import (
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// SeekTitleMetadata seeks s to the start of the title metadata.
func (w *InstallableWad) SeekTitleMetadata(s io.Seeker) error {
	offset := installableWadHeaderSize + alignU64(w.CertificateChainSize) + alignU64(w.TicketSize)
	_, err := s.Seek(int64(offset), io.SeekStart)
	return err
}

// TitleMetadataView creates a View into the title metadata stored inside
// the WAD stream.
func (w *InstallableWad) TitleMetadataView(s io.ReadWriteSeeker) (*stream.View, error) {
	if err := w.SeekTitleMetadata(s); err != nil {
		return nil, err
	}
	return stream.NewView(s, int64(w.TitleMetadataSize))
}

// TitleMetadata parses the title metadata stored inside the WAD stream.
func (w *InstallableWad) TitleMetadata(s io.ReadWriteSeeker) (*niiebla.TitleMetadata, error) {
	if err := w.SeekTitleMetadata(s); err != nil {
		return nil, err
	}
	return niiebla.ParseTitleMetadata(s)
}

// WriteTitleMetadataRaw writes a new title metadata into the stream of the
// WAD.
//
// Data after the title metadata (the content blobs) may be left unaligned
// or overwritten; WriteTitleMetadataSafe or WriteTitleMetadataSafeFile are
// usually preferable.
func (w *InstallableWad) WriteTitleMetadataRaw(s io.ReadWriteSeeker, newTitleMetadata *niiebla.TitleMetadata) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	if err := w.SeekTitleMetadata(pin); err != nil {
		return err
	}

	if err := newTitleMetadata.Serialize(pin); err != nil {
		return err
	}
	if err := pin.AlignZeroed(installableWadSectionBoundary); err != nil {
		return err
	}

	w.TitleMetadataSize = newTitleMetadata.Size()

	if _, err := pin.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return w.Dump(pin)
}

// writeTitleMetadataSafe is like WriteTitleMetadataRaw but makes an
// in-memory copy of all the trailing data to realign it afterward.
//
// The given title metadata should already have cohesion with the stored
// content blobs — callers (ModifyContentBuilder in particular) are
// responsible for capturing any content whose physical position this
// rewrite shifts before mutating ContentChunkEntries, since this helper
// alone only relocates content whose physical position is unaffected.
func (w *InstallableWad) writeTitleMetadataSafe(s io.ReadWriteSeeker, newTitleMetadata *niiebla.TitleMetadata) error {
	pin, err := stream.NewPin(s)
	if err != nil {
		return err
	}

	contents, err := w.storeContents(pin, newTitleMetadata, 0)
	if err != nil {
		return err
	}

	if err := w.WriteTitleMetadataRaw(pin, newTitleMetadata); err != nil {
		return err
	}

	return w.restoreContents(pin, newTitleMetadata, contents)
}

// WriteTitleMetadataSafe is the exported form of writeTitleMetadataSafe.
func (w *InstallableWad) WriteTitleMetadataSafe(s io.ReadWriteSeeker, newTitleMetadata *niiebla.TitleMetadata) error {
	return w.writeTitleMetadataSafe(s, newTitleMetadata)
}

// WriteTitleMetadataSafeFile is like WriteTitleMetadataSafe but will also
// trim the size of the file to avoid trailing garbage or useless zeroes.
func (w *InstallableWad) WriteTitleMetadataSafeFile(
	file interface {
		io.ReadWriteSeeker
		Truncator
	},
	newTitleMetadata *niiebla.TitleMetadata,
) error {
	if err := w.WriteTitleMetadataSafe(file, newTitleMetadata); err != nil {
		return err
	}

	newFileSize, err := stream.StreamPosition(file)
	if err != nil {
		return err
	}
	return file.Truncate(newFileSize)
}
