package wad

import (
	"crypto/sha1"
	"crypto/sha256"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// TitleMetadataEntryNotFoundError is returned by SeekContent when the
// selected physical position does not match any content entry as the
// stream is walked.
type TitleMetadataEntryNotFoundError struct{}

func (e *TitleMetadataEntryNotFoundError) Error() string { return "title metadata entry not found" }

// SeekContent seeks s to the start of the content selected by selector.
func (w *InstallableWad) SeekContent(
	s io.Seeker,
	titleMetadata *niiebla.TitleMetadata,
	selector niiebla.ContentSelector,
) error {
	contentOffset := installableWadHeaderSize +
		alignU64(w.CertificateChainSize) +
		alignU64(w.TicketSize) +
		alignU64(w.TitleMetadataSize)

	position, err := selector.PhysicalPosition(titleMetadata)
	if err != nil {
		return err
	}

	for i, entry := range titleMetadata.ContentChunkEntries {
		if i == position {
			_, err := s.Seek(int64(contentOffset), io.SeekStart)
			return err
		}

		contentOffset += stream.AlignToBoundary(entry.Size, installableWadSectionBoundary)
	}

	return &TitleMetadataEntryNotFoundError{}
}

// EncryptedContentView creates a View into the selected content's raw
// (still encrypted) bytes stored inside the WAD stream.
func (w *InstallableWad) EncryptedContentView(
	s io.ReadWriteSeeker,
	titleMetadata *niiebla.TitleMetadata,
	selector niiebla.ContentSelector,
) (*stream.View, error) {
	if err := w.SeekContent(s, titleMetadata, selector); err != nil {
		return nil, err
	}

	entry, err := selector.ContentEntry(titleMetadata)
	if err != nil {
		return nil, err
	}

	return stream.NewView(s, int64(entry.Size))
}

// DecryptedContentView creates a View into the selected content, decrypted
// in place. No caching is done, so wrapping the result in a bufio.Reader
// may be worthwhile for repeated small reads.
func (w *InstallableWad) DecryptedContentView(
	s io.ReadWriteSeeker,
	ticket *niiebla.PreSwitchTicket,
	titleMetadata *niiebla.TitleMetadata,
	method niiebla.CryptographicMethod,
	selector niiebla.ContentSelector,
) (*stream.CBCStream, error) {
	contentView, err := w.EncryptedContentView(s, titleMetadata, selector)
	if err != nil {
		return nil, err
	}

	return ticket.CryptographicStream(contentView, titleMetadata, selector, method)
}

// ModifyContentBuilder accumulates the configuration needed to add, remove
// or replace a content stored inside an InstallableWad.
type ModifyContentBuilder struct {
	wad       *InstallableWad
	wadStream io.ReadWriteSeeker

	newID   *uint32
	newIdx  *uint16
	newKind *niiebla.TitleMetadataContentEntryKind

	ticket              *niiebla.PreSwitchTicket
	cryptographicMethod *niiebla.CryptographicMethod
	trimIfIsFile        bool
}

// ModifyContent returns a builder to modify the contents stored in the WAD.
func (w *InstallableWad) ModifyContent(s io.ReadWriteSeeker) *ModifyContentBuilder {
	return &ModifyContentBuilder{wad: w, wadStream: s}
}

// SetCryptography configures the ticket and cryptographic method used to
// (de)cipher content touched by Add/Replace.
func (b *ModifyContentBuilder) SetCryptography(ticket *niiebla.PreSwitchTicket, method niiebla.CryptographicMethod) *ModifyContentBuilder {
	b.ticket = ticket
	b.cryptographicMethod = &method
	return b
}

// SetID sets the ID of the content entry created by Add or touched by
// Replace.
func (b *ModifyContentBuilder) SetID(id uint32) *ModifyContentBuilder {
	b.newID = &id
	return b
}

// SetIndex sets the index of the content entry created by Add or touched
// by Replace.
func (b *ModifyContentBuilder) SetIndex(index uint16) *ModifyContentBuilder {
	b.newIdx = &index
	return b
}

// SetKind sets the kind of the content entry created by Add or touched by
// Replace.
func (b *ModifyContentBuilder) SetKind(kind niiebla.TitleMetadataContentEntryKind) *ModifyContentBuilder {
	b.newKind = &kind
	return b
}

// TrimIfFile enables truncating the underlying stream after Remove, if it
// supports it (see Truncator).
func (b *ModifyContentBuilder) TrimIfFile(flag bool) *ModifyContentBuilder {
	b.trimIfIsFile = flag
	return b
}

// ModifyContentMissingSettingError is returned by Add/Replace when a
// required builder setting was not configured beforehand.
type ModifyContentMissingSettingError struct{ Setting string }

func (e *ModifyContentMissingSettingError) Error() string {
	return "missing a setting to modify this content: " + e.Setting
}

// Truncator is implemented by streams that can be shrunk to an exact byte
// length, such as *os.File. ModifyContentBuilder.Remove uses it (when
// TrimIfFile is enabled) instead of assuming the underlying stream is
// backed by a real file.
type Truncator interface {
	Truncate(size int64) error
}

func padToBlockBoundary(data []byte) []byte {
	remainder := len(data) % 16
	if remainder == 0 {
		return data
	}
	padded := make([]byte, len(data)+(16-remainder))
	copy(padded, data)
	return padded
}

func hashContent(data []byte, hasV1Extension bool) niiebla.TitleMetadataContentEntryHashKind {
	if hasV1Extension {
		return niiebla.TitleMetadataContentEntryHashVersion1{Data: sha256.Sum256(data)}
	}
	return niiebla.TitleMetadataContentEntryHashVersion0{Data: sha1.Sum(data)}
}

func (b *ModifyContentBuilder) syncWadHeaderContentSize(titleMetadata *niiebla.TitleMetadata) error {
	var total uint32
	for _, entry := range titleMetadata.ContentChunkEntries {
		total += uint32(entry.Size)
	}
	b.wad.ContentSize = total

	if _, err := b.wadStream.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return b.wad.Dump(b.wadStream)
}

// Add appends a new content, read in full from newData, to the WAD.
func (b *ModifyContentBuilder) Add(newData io.Reader, titleMetadata *niiebla.TitleMetadata) error {
	if b.newID == nil {
		return &ModifyContentMissingSettingError{Setting: "id, use SetID() on the builder"}
	}
	if b.newIdx == nil {
		return &ModifyContentMissingSettingError{Setting: "index, use SetIndex() on the builder"}
	}
	if b.newKind == nil {
		return &ModifyContentMissingSettingError{Setting: "kind, use SetKind() on the builder"}
	}
	if b.ticket == nil {
		return &ModifyContentMissingSettingError{Setting: "ticket, use SetCryptography() on the builder"}
	}
	if b.cryptographicMethod == nil {
		return &ModifyContentMissingSettingError{Setting: "cryptographic method, use SetCryptography() on the builder"}
	}

	pin, err := stream.NewPin(b.wadStream)
	if err != nil {
		return err
	}

	contentSelector := titleMetadata.SelectLast()

	if err := b.wad.SeekContent(pin, titleMetadata, contentSelector); err != nil {
		return err
	}
	lastEntry, err := contentSelector.ContentEntry(titleMetadata)
	if err != nil {
		return err
	}
	if _, err := pin.Seek(int64(lastEntry.Size), io.SeekCurrent); err != nil {
		return err
	}
	if err := pin.AlignPosition(installableWadSectionBoundary); err != nil {
		return err
	}

	newDataBytes, err := io.ReadAll(newData)
	if err != nil {
		return err
	}

	hash := hashContent(newDataBytes, titleMetadata.V1Extension != nil)

	entry := niiebla.TitleMetadataContentEntry{
		ID:    *b.newID,
		Index: *b.newIdx,
		Kind:  *b.newKind,
		Size:  uint64(len(newDataBytes)),
		Hash:  hash,
	}
	titleMetadata.ContentChunkEntries = append(titleMetadata.ContentChunkEntries, entry)

	cryptoStream, err := b.ticket.CryptographicStream(pin, titleMetadata, contentSelector, *b.cryptographicMethod)
	if err != nil {
		return err
	}
	if _, err := cryptoStream.Write(padToBlockBoundary(newDataBytes)); err != nil {
		return err
	}

	// Modifying the title metadata must be done at the end to avoid issues
	// with the position of the stream (writing on the start of the WAD by
	// accident).
	if err := b.wad.writeTitleMetadataSafe(b.wadStream, titleMetadata); err != nil {
		return err
	}

	return b.syncWadHeaderContentSize(titleMetadata)
}

// Remove deletes the selected content from the WAD.
func (b *ModifyContentBuilder) Remove(contentSelector niiebla.ContentSelector, titleMetadata *niiebla.TitleMetadata) error {
	pin, err := stream.NewPin(b.wadStream)
	if err != nil {
		return err
	}

	physicalPosition, err := contentSelector.PhysicalPosition(titleMetadata)
	if err != nil {
		return err
	}

	contents, err := b.wad.storeContents(pin, titleMetadata, physicalPosition+1)
	if err != nil {
		return err
	}
	if contents != nil {
		contents.firstContentPhysicalPosition--
	}

	titleMetadata.ContentChunkEntries = append(
		titleMetadata.ContentChunkEntries[:physicalPosition],
		titleMetadata.ContentChunkEntries[physicalPosition+1:]...,
	)

	if err := b.wad.writeTitleMetadataSafe(b.wadStream, titleMetadata); err != nil {
		return err
	}

	if err := b.wad.restoreContents(pin, titleMetadata, contents); err != nil {
		return err
	}

	if b.trimIfIsFile {
		if truncator, ok := b.wadStream.(Truncator); ok {
			pos, err := stream.StreamPosition(b.wadStream)
			if err != nil {
				return err
			}
			if err := truncator.Truncate(pos); err != nil {
				return err
			}
		}
	}

	return b.syncWadHeaderContentSize(titleMetadata)
}

// Replace overwrites the bytes of the selected content, read in full from
// newData, keeping its entry otherwise intact except for any overrides set
// on the builder.
func (b *ModifyContentBuilder) Replace(
	newData io.Reader,
	contentSelector niiebla.ContentSelector,
	titleMetadata *niiebla.TitleMetadata,
) error {
	if b.ticket == nil {
		return &ModifyContentMissingSettingError{Setting: "ticket, use SetCryptography() on the builder"}
	}
	if b.cryptographicMethod == nil {
		return &ModifyContentMissingSettingError{Setting: "cryptographic method, use SetCryptography() on the builder"}
	}

	pin, err := stream.NewPin(b.wadStream)
	if err != nil {
		return err
	}

	physicalPosition, err := contentSelector.PhysicalPosition(titleMetadata)
	if err != nil {
		return err
	}

	contents, err := b.wad.storeContents(pin, titleMetadata, physicalPosition+1)
	if err != nil {
		return err
	}

	newDataBytes, err := io.ReadAll(newData)
	if err != nil {
		return err
	}

	entry := &titleMetadata.ContentChunkEntries[physicalPosition]
	entry.Hash = hashContent(newDataBytes, titleMetadata.V1Extension != nil)
	entry.Size = uint64(len(newDataBytes))

	if b.newID != nil {
		entry.ID = *b.newID
	}
	if b.newIdx != nil {
		entry.Index = *b.newIdx
	}
	if b.newKind != nil {
		entry.Kind = *b.newKind
	}

	if err := b.wad.writeTitleMetadataSafe(b.wadStream, titleMetadata); err != nil {
		return err
	}

	if err := b.wad.SeekContent(pin, titleMetadata, contentSelector); err != nil {
		return err
	}

	cryptoStream, err := b.ticket.CryptographicStream(pin, titleMetadata, contentSelector, *b.cryptographicMethod)
	if err != nil {
		return err
	}
	if _, err := cryptoStream.Write(padToBlockBoundary(newDataBytes)); err != nil {
		return err
	}

	if err := pin.AlignPosition(installableWadSectionBoundary); err != nil {
		return err
	}

	if err := b.wad.restoreContents(pin, titleMetadata, contents); err != nil {
		return err
	}

	return b.syncWadHeaderContentSize(titleMetadata)
}
