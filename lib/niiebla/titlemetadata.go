package niiebla

import (
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// TitleMetadata is manifest data about the title itself, its structure and
// allowed system access (also known as TMD data).
//
// Compatible with both version zero (V0) and one (V1), present on the
// Nintendo Wii, Wii U, DSi and 3DS.
//
// Not compatible with "PackagedContentMeta" (aka CNMT) used on the Nintendo
// Switch and forward.
type TitleMetadata struct {
	SignedBlobHeader *SignedBlobHeader

	CertificateAuthorityCertificateRevocationListVersion uint8
	SignerCertificateRevocationListVersion               uint8

	// SystemRuntimeTitleId is, on the Wii and Wii U, the IOS (or IOSU)
	// title the title runs against. If nil, the title is itself an IOS.
	SystemRuntimeTitleId *TitleId

	TitleID TitleId

	GroupID uint16

	// AccessRights is a bitflag whose meaning depends on the platform;
	// prefer HasDVDAccessWii/HasPPCAccessWii on the Wii.
	AccessRights uint32

	TitleVersion uint16

	// BootContentIndex is the index of the content entry holding the
	// boot data.
	BootContentIndex uint16

	PlatformData TitleMetadataPlatformData

	V1Extension *TitleMetadataV1

	ContentChunkEntries []TitleMetadataContentEntry
}

// ActionInvalidError is returned by a Wii-only accessor when the title
// metadata's platform is not the Wii.
type ActionInvalidError struct{}

func (e *ActionInvalidError) Error() string { return "the action is invalid for the platform of the title" }

// IncompatibleTitleMetadataVersionError is returned when the format_version
// byte does not match any known title metadata version.
type IncompatibleTitleMetadataVersionError struct{ Version uint8 }

func (e *IncompatibleTitleMetadataVersionError) Error() string {
	return fmt.Sprintf("the version of the title metadata is not compatible (version: %d)", e.Version)
}

// UnknownPlatformError is returned when a title metadata's platform
// identifier does not match any known platform.
type UnknownPlatformError struct{ Identifier uint32 }

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("the given title metadata platform is not known: %d", e.Identifier)
}

// UnknownWiiRegionError is returned when a Wii title metadata's region
// identifier does not match any known region.
type UnknownWiiRegionError struct{ Identifier uint16 }

func (e *UnknownWiiRegionError) Error() string {
	return fmt.Sprintf("the given title metadata Nintendo Wii region is not known: %d", e.Identifier)
}

// UnknownContentEntryKindError is returned when a content entry's kind tag
// does not match any known kind.
type UnknownContentEntryKindError struct{ Identifier uint16 }

func (e *UnknownContentEntryKindError) Error() string {
	return fmt.Sprintf("the given content entry kind is not known: %d", e.Identifier)
}

// ParseTitleMetadata parses a title metadata manifest from s.
func ParseTitleMetadata(s io.ReadWriteSeeker) (*TitleMetadata, error) {
	header, err := ParseSignedBlobHeader(s)
	if err != nil {
		return nil, err
	}

	formatVersion, err := stream.ReadU8(s)
	if err != nil {
		return nil, err
	}

	caCRLVersion, err := stream.ReadU8(s)
	if err != nil {
		return nil, err
	}
	signerCRLVersion, err := stream.ReadU8(s)
	if err != nil {
		return nil, err
	}

	// On some platforms this byte has a meaning as a bool.
	firstReservedByte, err := stream.ReadBool(s)
	if err != nil {
		return nil, err
	}

	systemRuntimeRaw, err := stream.ReadU64(s)
	if err != nil {
		return nil, err
	}
	var systemRuntimeTitleID *TitleId
	if systemRuntimeRaw != 0 {
		id := TitleId(systemRuntimeRaw)
		systemRuntimeTitleID = &id
	}

	titleIDRaw, err := stream.ReadU64(s)
	if err != nil {
		return nil, err
	}
	titleID := TitleId(titleIDRaw)

	platformIdentifier, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	platformData, err := newDummyTitleMetadataPlatformDataFromIdentifier(platformIdentifier)
	if err != nil {
		return nil, err
	}

	groupID, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}

	switch p := platformData.(type) {
	case TitleMetadataPlatformDataDSi, TitleMetadataPlatformDataWiiU:
		if _, err := s.Seek(62, io.SeekCurrent); err != nil {
			return nil, err
		}

	case *TitleMetadataPlatformDataConsole3ds:
		publicSaveDataSize, err := stream.ReadU32LE(s)
		if err != nil {
			return nil, err
		}
		privateSaveDataSize, err := stream.ReadU32LE(s)
		if err != nil {
			return nil, err
		}
		if _, err := s.Seek(4, io.SeekCurrent); err != nil {
			return nil, err
		}
		srlFlag, err := stream.ReadU8(s)
		if err != nil {
			return nil, err
		}
		if _, err := s.Seek(49, io.SeekCurrent); err != nil {
			return nil, err
		}

		p.PublicSaveDataSize = publicSaveDataSize
		p.PrivateSaveDataSize = privateSaveDataSize
		p.SRLFlag = srlFlag
		platformData = p

	case *TitleMetadataPlatformDataWii:
		p.IsWiiUvWiiOnlyTitle = firstReservedByte

		if _, err := s.Seek(2, io.SeekCurrent); err != nil {
			return nil, err
		}

		regionIdentifier, err := stream.ReadU16(s)
		if err != nil {
			return nil, err
		}
		region, err := newTitleMetadataPlatformDataWiiRegionFromIdentifier(regionIdentifier)
		if err != nil {
			return nil, err
		}
		p.Region = region

		if err := stream.ReadExactly(s, p.Ratings[:]); err != nil {
			return nil, err
		}

		if _, err := s.Seek(12, io.SeekCurrent); err != nil {
			return nil, err
		}

		if err := stream.ReadExactly(s, p.IPCMask[:]); err != nil {
			return nil, err
		}

		if _, err := s.Seek(18, io.SeekCurrent); err != nil {
			return nil, err
		}

		platformData = p
	}

	accessRights, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	titleVersion, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}
	numberOfContentEntries, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}
	bootContentIndex, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}

	// Skip the title minor version as it was never used.
	if _, err := s.Seek(2, io.SeekCurrent); err != nil {
		return nil, err
	}

	var v1Extension *TitleMetadataV1
	switch formatVersion {
	case 0:
		// no extension
	case 1:
		v1Extension, err = parseTitleMetadataV1(s)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &IncompatibleTitleMetadataVersionError{Version: formatVersion}
	}

	contentChunkEntries := make([]TitleMetadataContentEntry, 0, numberOfContentEntries)
	for i := uint16(0); i < numberOfContentEntries; i++ {
		entry, err := parseTitleMetadataContentEntry(s, v1Extension != nil)
		if err != nil {
			return nil, err
		}
		contentChunkEntries = append(contentChunkEntries, entry)
	}

	return &TitleMetadata{
		SignedBlobHeader: header,
		CertificateAuthorityCertificateRevocationListVersion: caCRLVersion,
		SignerCertificateRevocationListVersion:               signerCRLVersion,
		SystemRuntimeTitleId:                                 systemRuntimeTitleID,
		TitleID:                                              titleID,
		PlatformData:                                         platformData,
		GroupID:                                              groupID,
		TitleVersion:                                         titleVersion,
		BootContentIndex:                                     bootContentIndex,
		AccessRights:                                         accessRights,
		V1Extension:                                          v1Extension,
		ContentChunkEntries:                                  contentChunkEntries,
	}, nil
}

// Serialize writes the title metadata to s.
func (t *TitleMetadata) Serialize(s io.ReadWriteSeeker) error {
	if err := t.SignedBlobHeader.Serialize(s); err != nil {
		return err
	}
	if err := stream.WriteBool(s, t.V1Extension != nil); err != nil {
		return err
	}
	if err := stream.WriteU8(s, t.CertificateAuthorityCertificateRevocationListVersion); err != nil {
		return err
	}
	if err := stream.WriteU8(s, t.SignerCertificateRevocationListVersion); err != nil {
		return err
	}

	// Weird reserved byte that only has meaning on the Wii.
	reservedByte := uint8(0)
	if wii, ok := t.PlatformData.(*TitleMetadataPlatformDataWii); ok && wii.IsWiiUvWiiOnlyTitle {
		reservedByte = 1
	}
	if err := stream.WriteU8(s, reservedByte); err != nil {
		return err
	}

	if t.SystemRuntimeTitleId == nil {
		if err := stream.WriteZeroed(s, 8); err != nil {
			return err
		}
	} else if err := t.SystemRuntimeTitleId.Serialize(s); err != nil {
		return err
	}

	if err := t.TitleID.Serialize(s); err != nil {
		return err
	}
	if err := t.PlatformData.dumpIdentifier(s); err != nil {
		return err
	}
	if err := stream.WriteU16(s, t.GroupID); err != nil {
		return err
	}

	switch p := t.PlatformData.(type) {
	case TitleMetadataPlatformDataDSi, TitleMetadataPlatformDataWiiU:
		if err := stream.WriteZeroed(s, 62); err != nil {
			return err
		}

	case *TitleMetadataPlatformDataConsole3ds:
		if err := stream.WriteU32LE(s, p.PublicSaveDataSize); err != nil {
			return err
		}
		if err := stream.WriteU32LE(s, p.PrivateSaveDataSize); err != nil {
			return err
		}
		if err := stream.WriteZeroed(s, 4); err != nil {
			return err
		}
		if err := stream.WriteU8(s, p.SRLFlag); err != nil {
			return err
		}
		if err := stream.WriteZeroed(s, 49); err != nil {
			return err
		}

	case *TitleMetadataPlatformDataWii:
		if err := stream.WriteZeroed(s, 2); err != nil {
			return err
		}
		if err := p.Region.dumpIdentifier(s); err != nil {
			return err
		}
		if _, err := s.Write(p.Ratings[:]); err != nil {
			return err
		}
		if err := stream.WriteZeroed(s, 12); err != nil {
			return err
		}
		if _, err := s.Write(p.IPCMask[:]); err != nil {
			return err
		}
		if err := stream.WriteZeroed(s, 18); err != nil {
			return err
		}
	}

	if err := stream.WriteU32(s, t.AccessRights); err != nil {
		return err
	}
	if err := stream.WriteU16(s, t.TitleVersion); err != nil {
		return err
	}
	if err := stream.WriteU16(s, uint16(len(t.ContentChunkEntries))); err != nil {
		return err
	}
	if err := stream.WriteU16(s, t.BootContentIndex); err != nil {
		return err
	}

	// Skip the title minor version as it was never used.
	if err := stream.WriteZeroed(s, 2); err != nil {
		return err
	}

	if t.V1Extension != nil {
		if err := t.V1Extension.serialize(s); err != nil {
			return err
		}
	}

	for _, entry := range t.ContentChunkEntries {
		if err := entry.serialize(s); err != nil {
			return err
		}
	}

	return nil
}

// HasDVDAccessWii reports whether the title has access to the DVD drive.
// Only valid on the Wii (and Wii U vWii) platform.
func (t *TitleMetadata) HasDVDAccessWii() (bool, error) {
	if _, ok := t.PlatformData.(*TitleMetadataPlatformDataWii); !ok {
		return false, &ActionInvalidError{}
	}
	return t.AccessRights&0b10 != 0, nil
}

// HasPPCAccessWii reports whether the title has access to all hardware
// from its main PPC chip without going through an IOS (AHBPROT disabled).
// Only valid on the Wii (and Wii U vWii) platform.
func (t *TitleMetadata) HasPPCAccessWii() (bool, error) {
	if _, ok := t.PlatformData.(*TitleMetadataPlatformDataWii); !ok {
		return false, &ActionInvalidError{}
	}
	return t.AccessRights&0b1 != 0, nil
}

// Size returns the size in bytes of the title metadata.
func (t *TitleMetadata) Size() uint32 {
	numOfEntries := uint32(len(t.ContentChunkEntries))

	size := uint32(100) + t.SignedBlobHeader.Size() + 16*numOfEntries

	if t.V1Extension != nil {
		// The size of the hash per each content plus the hash of all
		// the content entries groups plus the size of all (64)
		// content entries groups.
		size += 32*numOfEntries + 32 + (4+32)*64
	} else {
		size += 20 * numOfEntries
	}

	return size
}

// SelectWithPhysicalPosition selects the content at the given physical
// (on-disk ordering) position.
func (t *TitleMetadata) SelectWithPhysicalPosition(position int) ContentSelector {
	return ContentSelector{method: contentSelectorMethod{
		kind:             contentSelectorWithPhysicalPosition,
		physicalPosition: position,
	}}
}

// SelectWithId selects the first content with the given ID.
func (t *TitleMetadata) SelectWithId(id uint32) ContentSelector {
	return ContentSelector{method: contentSelectorMethod{kind: contentSelectorWithId, id: id}}
}

// SelectWithIndex selects the first content with the given index.
func (t *TitleMetadata) SelectWithIndex(index uint16) ContentSelector {
	return ContentSelector{method: contentSelectorMethod{kind: contentSelectorWithIndex, index: index}}
}

// SelectFirst selects the first content stored inside the title (given its
// physical position).
func (t *TitleMetadata) SelectFirst() ContentSelector {
	return t.SelectWithPhysicalPosition(0)
}

// SelectLast selects the last content stored inside the title (given its
// physical position). This selection is lazily evaluated.
func (t *TitleMetadata) SelectLast() ContentSelector {
	return ContentSelector{method: contentSelectorMethod{kind: contentSelectorLast}}
}

// TitleMetadataPlatformData is data relevant to the platform the title is
// for.
//
// Parsing and dumping of this data happens on TitleMetadata itself because
// the data is not sequential; it is split across the stream.
type TitleMetadataPlatformData interface {
	dumpIdentifier(w io.Writer) error
}

// TitleMetadataPlatformDataDSi marks a title as being for the Nintendo
// DSi (DSiWare title).
type TitleMetadataPlatformDataDSi struct{}

// TitleMetadataPlatformDataWiiU marks a title as being for the Nintendo
// Wii U.
type TitleMetadataPlatformDataWiiU struct{}

// TitleMetadataPlatformDataWii marks a title as being for the Nintendo
// Wii.
type TitleMetadataPlatformDataWii struct {
	// IsWiiUvWiiOnlyTitle reports whether the title is made to only run
	// on Wii U vWii (the virtual Wii system inside the Wii U).
	IsWiiUvWiiOnlyTitle bool

	Region TitleMetadataPlatformDataWiiRegion

	Ratings [16]byte
	IPCMask [12]byte
}

// TitleMetadataPlatformDataConsole3ds marks a title as being for the
// Nintendo 3DS.
type TitleMetadataPlatformDataConsole3ds struct {
	PublicSaveDataSize  uint32
	PrivateSaveDataSize uint32
	SRLFlag             uint8
}

func newDummyTitleMetadataPlatformDataFromIdentifier(identifier uint32) (TitleMetadataPlatformData, error) {
	switch identifier {
	case 0:
		return TitleMetadataPlatformDataDSi{}, nil
	case 1:
		return &TitleMetadataPlatformDataWii{Region: TitleMetadataPlatformDataWiiRegionRegionFree}, nil
	case 64:
		return &TitleMetadataPlatformDataConsole3ds{}, nil
	case 256:
		return TitleMetadataPlatformDataWiiU{}, nil
	default:
		return nil, &UnknownPlatformError{Identifier: identifier}
	}
}

func (TitleMetadataPlatformDataDSi) dumpIdentifier(w io.Writer) error {
	return stream.WriteU32(w, 0)
}
func (*TitleMetadataPlatformDataWii) dumpIdentifier(w io.Writer) error {
	return stream.WriteU32(w, 1)
}
func (*TitleMetadataPlatformDataConsole3ds) dumpIdentifier(w io.Writer) error {
	return stream.WriteU32(w, 64)
}
func (TitleMetadataPlatformDataWiiU) dumpIdentifier(w io.Writer) error {
	return stream.WriteU32(w, 256)
}

// TitleMetadataPlatformDataWiiRegion is the region a title can be sold in
// on a Nintendo Wii console.
type TitleMetadataPlatformDataWiiRegion uint16

const (
	TitleMetadataPlatformDataWiiRegionJapan TitleMetadataPlatformDataWiiRegion = iota
	TitleMetadataPlatformDataWiiRegionUSA
	TitleMetadataPlatformDataWiiRegionEurope
	TitleMetadataPlatformDataWiiRegionRegionFree
	TitleMetadataPlatformDataWiiRegionKorea
)

func newTitleMetadataPlatformDataWiiRegionFromIdentifier(identifier uint16) (TitleMetadataPlatformDataWiiRegion, error) {
	switch identifier {
	case 0, 1, 2, 3, 4:
		return TitleMetadataPlatformDataWiiRegion(identifier), nil
	default:
		return 0, &UnknownWiiRegionError{Identifier: identifier}
	}
}

func (r TitleMetadataPlatformDataWiiRegion) dumpIdentifier(w io.Writer) error {
	return stream.WriteU16(w, uint16(r))
}

// TitleMetadataContentEntry is an entry of a content chunk of a title.
type TitleMetadataContentEntry struct {
	// ID is unique per title.
	ID uint32

	// Index is unique per title "bundle" (WAD file, disc image, etc).
	Index uint16

	Kind TitleMetadataContentEntryKind

	Size uint64

	Hash TitleMetadataContentEntryHashKind
}

// TitleMetadataContentEntryHashKind is the hash of a content, whose format
// depends on the title metadata version.
type TitleMetadataContentEntryHashKind interface {
	dump(w io.Writer) error
}

// TitleMetadataContentEntryHashVersion0 is a SHA-1 hash.
type TitleMetadataContentEntryHashVersion0 struct{ Data [20]byte }

// TitleMetadataContentEntryHashVersion1 is a SHA-256 hash. On Wii U
// titles this is a SHA-1 hash padded with zeroes.
type TitleMetadataContentEntryHashVersion1 struct{ Data [32]byte }

func (h TitleMetadataContentEntryHashVersion0) dump(w io.Writer) error {
	_, err := w.Write(h.Data[:])
	return err
}
func (h TitleMetadataContentEntryHashVersion1) dump(w io.Writer) error {
	_, err := w.Write(h.Data[:])
	return err
}

// TitleMetadataContentEntryKind is the behavior of a content inside the
// system.
type TitleMetadataContentEntryKind int

const (
	// TitleMetadataContentEntryKindNormal is a normal content.
	TitleMetadataContentEntryKindNormal TitleMetadataContentEntryKind = iota

	// TitleMetadataContentEntryKindNormalWiiUKind1 is a normal content,
	// present on the Wii U.
	TitleMetadataContentEntryKindNormalWiiUKind1

	// TitleMetadataContentEntryKindNormalWiiUKind2 is a normal content,
	// present on the Wii U (stored with a different value in the
	// metadata).
	TitleMetadataContentEntryKindNormalWiiUKind2

	// TitleMetadataContentEntryKindNormalWiiUKind3 is a normal content,
	// present on the Wii U (stored with a different value in the
	// metadata).
	TitleMetadataContentEntryKindNormalWiiUKind3

	// TitleMetadataContentEntryKindDlc is a downloadable content for a
	// title.
	TitleMetadataContentEntryKindDlc

	// TitleMetadataContentEntryKindShared is a content that can be
	// shared between different titles; the system may store it on its
	// internal memory for reuse.
	TitleMetadataContentEntryKindShared
)

func parseTitleMetadataContentEntry(s io.ReadWriteSeeker, version1 bool) (TitleMetadataContentEntry, error) {
	id, err := stream.ReadU32(s)
	if err != nil {
		return TitleMetadataContentEntry{}, err
	}
	index, err := stream.ReadU16(s)
	if err != nil {
		return TitleMetadataContentEntry{}, err
	}

	kindTag, err := stream.ReadU16(s)
	if err != nil {
		return TitleMetadataContentEntry{}, err
	}

	var kind TitleMetadataContentEntryKind
	switch kindTag {
	case 0x0001:
		kind = TitleMetadataContentEntryKindNormal
	case 0x2001:
		kind = TitleMetadataContentEntryKindNormalWiiUKind1
	case 0x2003:
		kind = TitleMetadataContentEntryKindNormalWiiUKind2
	case 0x6003:
		kind = TitleMetadataContentEntryKindNormalWiiUKind3
	case 0x4001:
		kind = TitleMetadataContentEntryKindDlc
	case 0x8001:
		kind = TitleMetadataContentEntryKindShared
	default:
		return TitleMetadataContentEntry{}, &UnknownContentEntryKindError{Identifier: kindTag}
	}

	size, err := stream.ReadU64(s)
	if err != nil {
		return TitleMetadataContentEntry{}, err
	}

	var hash TitleMetadataContentEntryHashKind
	if version1 {
		var data [32]byte
		if err := stream.ReadExactly(s, data[:]); err != nil {
			return TitleMetadataContentEntry{}, err
		}
		hash = TitleMetadataContentEntryHashVersion1{Data: data}
	} else {
		var data [20]byte
		if err := stream.ReadExactly(s, data[:]); err != nil {
			return TitleMetadataContentEntry{}, err
		}
		hash = TitleMetadataContentEntryHashVersion0{Data: data}
	}

	return TitleMetadataContentEntry{ID: id, Index: index, Kind: kind, Size: size, Hash: hash}, nil
}

func (e TitleMetadataContentEntry) serialize(w io.Writer) error {
	if err := stream.WriteU32(w, e.ID); err != nil {
		return err
	}
	if err := stream.WriteU16(w, e.Index); err != nil {
		return err
	}

	var kindTag uint16
	switch e.Kind {
	case TitleMetadataContentEntryKindNormal:
		kindTag = 0x0001
	case TitleMetadataContentEntryKindNormalWiiUKind1:
		kindTag = 0x2001
	case TitleMetadataContentEntryKindNormalWiiUKind2:
		kindTag = 0x2003
	case TitleMetadataContentEntryKindNormalWiiUKind3:
		kindTag = 0x6003
	case TitleMetadataContentEntryKindDlc:
		kindTag = 0x4001
	case TitleMetadataContentEntryKindShared:
		kindTag = 0x8001
	}
	if err := stream.WriteU16(w, kindTag); err != nil {
		return err
	}

	if err := stream.WriteU64(w, e.Size); err != nil {
		return err
	}

	return e.Hash.dump(w)
}

// TitleMetadataV1 is the extra data added by the V1 extension of the title
// metadata.
type TitleMetadataV1 struct {
	// ContentEntriesGroupsHashSHA256 is the hash of all the content
	// entries groups stored at ContentEntriesGroups.
	ContentEntriesGroupsHashSHA256 [32]byte

	// ContentEntriesGroups holds all 64 content entries groups, with
	// unused slots left zeroed.
	ContentEntriesGroups [64]TitleMetadataV1ContentEntriesGroup
}

func parseTitleMetadataV1(s io.ReadWriteSeeker) (*TitleMetadataV1, error) {
	var hash [32]byte
	if err := stream.ReadExactly(s, hash[:]); err != nil {
		return nil, err
	}

	var groups [64]TitleMetadataV1ContentEntriesGroup
	for i := range groups {
		group, err := parseTitleMetadataV1ContentEntriesGroup(s)
		if err != nil {
			return nil, err
		}
		groups[i] = group
	}

	return &TitleMetadataV1{ContentEntriesGroupsHashSHA256: hash, ContentEntriesGroups: groups}, nil
}

func (v *TitleMetadataV1) serialize(w io.Writer) error {
	if _, err := w.Write(v.ContentEntriesGroupsHashSHA256[:]); err != nil {
		return err
	}
	for _, group := range v.ContentEntriesGroups {
		if err := group.serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// TitleMetadataV1ContentEntriesGroup is a group of content entries.
type TitleMetadataV1ContentEntriesGroup struct {
	// FirstContentIndex is the index of the first content inside the
	// group.
	FirstContentIndex uint16

	ContentEntriesInTheGroup uint16

	ContentEntriesGroupHashSHA256 [32]byte
}

func parseTitleMetadataV1ContentEntriesGroup(s io.ReadWriteSeeker) (TitleMetadataV1ContentEntriesGroup, error) {
	firstContentIndex, err := stream.ReadU16(s)
	if err != nil {
		return TitleMetadataV1ContentEntriesGroup{}, err
	}
	contentEntriesInTheGroup, err := stream.ReadU16(s)
	if err != nil {
		return TitleMetadataV1ContentEntriesGroup{}, err
	}

	var hash [32]byte
	if err := stream.ReadExactly(s, hash[:]); err != nil {
		return TitleMetadataV1ContentEntriesGroup{}, err
	}

	return TitleMetadataV1ContentEntriesGroup{
		FirstContentIndex:             firstContentIndex,
		ContentEntriesInTheGroup:      contentEntriesInTheGroup,
		ContentEntriesGroupHashSHA256: hash,
	}, nil
}

func (g TitleMetadataV1ContentEntriesGroup) serialize(w io.Writer) error {
	if err := stream.WriteU16(w, g.FirstContentIndex); err != nil {
		return err
	}
	if err := stream.WriteU16(w, g.ContentEntriesInTheGroup); err != nil {
		return err
	}
	_, err := w.Write(g.ContentEntriesGroupHashSHA256[:])
	return err
}
