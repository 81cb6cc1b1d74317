package niiebla

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/zelzip/niiebla-go/lib/niiebla/stream"
)

// CryptographicMethod is a cryptographic method that can be used to decrypt
// the content stored inside a title.
type CryptographicMethod int

const (
	// CryptographicMethodWii is the method used on the Wii (and Wii U
	// vWii) platform.
	CryptographicMethodWii CryptographicMethod = iota
)

// PreSwitchTicket is manifest data about the ownership of a title and its
// permissions over the hardware. Only compatible with format versions zero
// (V0) and one (V1), present on the Wii, Wii U, DSi and 3DS — the version
// two (V2) format used on the Switch and onward is a completely different
// and incompatible layout whose version field has been reallocated to a
// different offset.
type PreSwitchTicket struct {
	// SignedBlobHeader proves this ticket was created by an authorized
	// entity.
	SignedBlobHeader *SignedBlobHeader

	// ECCPublicKey is the public key emitted by the "ticketing server",
	// used for installation of the title in some platforms.
	ECCPublicKey [60]byte

	// CertificateAuthorityCertificateRevocationListVersion is the CRL
	// version used for the CA certificate.
	CertificateAuthorityCertificateRevocationListVersion uint8

	// SignerCertificateRevocationListVersion is the CRL version used for
	// the signer certificate.
	SignerCertificateRevocationListVersion uint8

	// EncryptedTitleKey is the symmetric title key, encrypted; once
	// decrypted it is used to encrypt the title's content.
	EncryptedTitleKey [16]byte

	// TicketID is the ID of the ticket.
	TicketID uint64

	// DeviceID is the ID of the device this ticket is valid for; nil
	// means the ticket is valid for all consoles.
	DeviceID *uint32

	// TitleID is the ID of the associated title.
	TitleID TitleId

	// SystemAppContentAccess is the set of permissions the "System App"
	// has to access the contents of the title.
	SystemAppContentAccess PreSwitchTicketSystemAppContentAccessFlags

	// TitleVersion is the version of the title.
	TitleVersion uint16

	// PermittedGenericTitleID is compared, after masking with
	// PermittedGenericTitleIDMask, against the title ID to determine
	// whether that ID is permitted. The exact semantics of this
	// mechanism have not been fully reverse engineered.
	PermittedGenericTitleID uint32

	// PermittedGenericTitleIDMask is an inverse mask applied to the
	// title ID before the comparison described on
	// PermittedGenericTitleID.
	PermittedGenericTitleIDMask uint32

	// License is the license kind of the title.
	License PreTicketLicense

	// CommonKeyKindIndex selects which common key is used to decrypt the
	// title content; the value behind the index is platform-dependent.
	CommonKeyKindIndex uint8

	// Audit is a revision/audit counter of the title whose exact meaning
	// is unclear.
	Audit uint8

	// ContentAccessPermissions is a bitflag set, one bit per content
	// index, of unclear meaning.
	ContentAccessPermissions [64]byte

	// LimitEntries is a set of limits over the use of the title.
	LimitEntries [8]PreSwitchTicketLimitEntry

	// V1Extension holds the extra data present only on V1 tickets.
	V1Extension *PreSwitchTicketV1
}

// ParsePreSwitchTicket parses a ticket from s.
func ParsePreSwitchTicket(s io.ReadWriteSeeker) (*PreSwitchTicket, error) {
	header, err := ParseSignedBlobHeader(s)
	if err != nil {
		return nil, err
	}

	var eccPublicKey [60]byte
	if err := stream.ReadExactly(s, eccPublicKey[:]); err != nil {
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

	var encryptedTitleKey [16]byte
	if err := stream.ReadExactly(s, encryptedTitleKey[:]); err != nil {
		return nil, err
	}

	// Skip 1 reserved byte
	if _, err := s.Seek(1, io.SeekCurrent); err != nil {
		return nil, err
	}

	ticketID, err := stream.ReadU64(s)
	if err != nil {
		return nil, err
	}

	deviceIDRaw, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	var deviceID *uint32
	if deviceIDRaw != 0 {
		deviceID = &deviceIDRaw
	}

	titleIDRaw, err := stream.ReadU64(s)
	if err != nil {
		return nil, err
	}
	titleID := TitleId(titleIDRaw)

	systemAppBits, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}

	titleVersion, err := stream.ReadU16(s)
	if err != nil {
		return nil, err
	}

	permittedGenericTitleID, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}
	permittedGenericTitleIDMask, err := stream.ReadU32(s)
	if err != nil {
		return nil, err
	}

	licenseRaw, err := stream.ReadU8(s)
	if err != nil {
		return nil, err
	}
	license, err := parsePreTicketLicense(licenseRaw)
	if err != nil {
		return nil, err
	}

	commonKeyKindIndex, err := stream.ReadU8(s)
	if err != nil {
		return nil, err
	}

	// Skip 47 bytes whose use is still unknown
	if _, err := s.Seek(47, io.SeekCurrent); err != nil {
		return nil, err
	}

	audit, err := stream.ReadU8(s)
	if err != nil {
		return nil, err
	}

	var contentAccessPermissions [64]byte
	if err := stream.ReadExactly(s, contentAccessPermissions[:]); err != nil {
		return nil, err
	}

	// Skip 2 bytes of padding
	if _, err := s.Seek(2, io.SeekCurrent); err != nil {
		return nil, err
	}

	var limitEntries [8]PreSwitchTicketLimitEntry
	for i := range limitEntries {
		kind, err := stream.ReadU32(s)
		if err != nil {
			return nil, err
		}
		value, err := stream.ReadU32(s)
		if err != nil {
			return nil, err
		}
		entry, err := parsePreSwitchTicketLimitEntry(kind, value)
		if err != nil {
			return nil, err
		}
		limitEntries[i] = entry
	}

	var v1Extension *PreSwitchTicketV1
	switch formatVersion {
	case 0:
	case 1:
		v1Extension, err = parsePreSwitchTicketV1(s)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &IncompatibleTicketVersionError{Version: formatVersion}
	}

	return &PreSwitchTicket{
		SignedBlobHeader: header,
		ECCPublicKey:     eccPublicKey,
		CertificateAuthorityCertificateRevocationListVersion: caCRLVersion,
		SignerCertificateRevocationListVersion:               signerCRLVersion,
		EncryptedTitleKey:        encryptedTitleKey,
		TicketID:                 ticketID,
		DeviceID:                 deviceID,
		TitleID:                  titleID,
		SystemAppContentAccess:   PreSwitchTicketSystemAppContentAccessFlags(systemAppBits),
		TitleVersion:             titleVersion,
		PermittedGenericTitleID:  permittedGenericTitleID,
		PermittedGenericTitleIDMask: permittedGenericTitleIDMask,
		License:                  license,
		CommonKeyKindIndex:       commonKeyKindIndex,
		Audit:                    audit,
		ContentAccessPermissions: contentAccessPermissions,
		LimitEntries:             limitEntries,
		V1Extension:              v1Extension,
	}, nil
}

// Serialize writes the ticket to s.
func (t *PreSwitchTicket) Serialize(s io.ReadWriteSeeker) error {
	if err := t.SignedBlobHeader.Serialize(s); err != nil {
		return err
	}
	if _, err := s.Write(t.ECCPublicKey[:]); err != nil {
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
	if _, err := s.Write(t.EncryptedTitleKey[:]); err != nil {
		return err
	}

	// Skip 1 reserved byte
	if err := stream.WriteZeroed(s, 1); err != nil {
		return err
	}

	if err := stream.WriteU64(s, t.TicketID); err != nil {
		return err
	}

	deviceID := uint32(0)
	if t.DeviceID != nil {
		deviceID = *t.DeviceID
	}
	if err := stream.WriteU32(s, deviceID); err != nil {
		return err
	}

	if err := t.TitleID.Serialize(s); err != nil {
		return err
	}

	if err := stream.WriteU16(s, uint16(t.SystemAppContentAccess)); err != nil {
		return err
	}
	if err := stream.WriteU16(s, t.TitleVersion); err != nil {
		return err
	}
	if err := stream.WriteU32(s, t.PermittedGenericTitleID); err != nil {
		return err
	}
	if err := stream.WriteU32(s, t.PermittedGenericTitleIDMask); err != nil {
		return err
	}

	if err := t.License.serialize(s); err != nil {
		return err
	}
	if err := stream.WriteU8(s, t.CommonKeyKindIndex); err != nil {
		return err
	}

	// Skip 47 assigned but unused bytes
	if err := stream.WriteZeroed(s, 47); err != nil {
		return err
	}

	if err := stream.WriteU8(s, t.Audit); err != nil {
		return err
	}
	if _, err := s.Write(t.ContentAccessPermissions[:]); err != nil {
		return err
	}

	// Skip 2 bytes of padding
	if err := stream.WriteZeroed(s, 2); err != nil {
		return err
	}

	for _, entry := range t.LimitEntries {
		if err := entry.serialize(s); err != nil {
			return err
		}
	}

	if t.V1Extension != nil {
		if err := t.V1Extension.serialize(s); err != nil {
			return err
		}
	}

	return nil
}

// Size returns the size of the ticket in bytes.
func (t *PreSwitchTicket) Size() uint32 {
	size := uint32(292) + t.SignedBlobHeader.Size()
	if t.V1Extension != nil {
		size += t.V1Extension.size()
	}
	return size
}

// IsDeviceUnique reports whether this ticket was generated for use only on
// a specific console (i.e. the associated title was purchased).
func (t *PreSwitchTicket) IsDeviceUnique() bool {
	return t.DeviceID != nil
}

// DecryptTitleKey decrypts the ticket's title key using the given
// cryptographic method.
func (t *PreSwitchTicket) DecryptTitleKey(method CryptographicMethod) ([16]byte, error) {
	switch method {
	case CryptographicMethodWii:
		id := uint64(t.TitleID)
		if t.IsDeviceUnique() {
			id = t.TicketID
		}

		var iv [16]byte
		iv[0] = byte(id >> 56)
		iv[1] = byte(id >> 48)
		iv[2] = byte(id >> 40)
		iv[3] = byte(id >> 32)
		iv[4] = byte(id >> 24)
		iv[5] = byte(id >> 16)
		iv[6] = byte(id >> 8)
		iv[7] = byte(id)

		commonKeyKind, err := NewWiiCommonKeyKind(t.CommonKeyKindIndex)
		if err != nil {
			return [16]byte{}, err
		}

		commonKeyBytes := commonKeyKind.Bytes()
		block, err := aes.NewCipher(commonKeyBytes[:])
		if err != nil {
			return [16]byte{}, err
		}
		decrypter := cipher.NewCBCDecrypter(block, iv[:])

		var titleKey [16]byte
		titleKey = t.EncryptedTitleKey
		decrypter.CryptBlocks(titleKey[:], titleKey[:])

		return titleKey, nil

	default:
		return [16]byte{}, fmt.Errorf("unsupported cryptographic method %v", method)
	}
}

// CryptographicStream returns a decryptor for a content, where s is the
// content's raw bytes.
func (t *PreSwitchTicket) CryptographicStream(
	s io.ReadWriteSeeker,
	titleMetadata *TitleMetadata,
	contentSelector ContentSelector,
	method CryptographicMethod,
) (*stream.CBCStream, error) {
	switch method {
	case CryptographicMethodWii:
		titleKey, err := t.DecryptTitleKey(method)
		if err != nil {
			return nil, err
		}

		index, err := contentSelector.Index(titleMetadata)
		if err != nil {
			return nil, err
		}

		var iv [16]byte
		iv[0] = byte(index >> 8)
		iv[1] = byte(index)

		return stream.NewCBCStream(s, titleKey, iv), nil

	default:
		return nil, fmt.Errorf("unsupported cryptographic method %v", method)
	}
}

// IncompatibleTicketVersionError is returned when a ticket's format_version
// field is neither 0 nor 1.
type IncompatibleTicketVersionError struct {
	Version uint8
}

func (e *IncompatibleTicketVersionError) Error() string {
	return fmt.Sprintf("the version of the ticket is not compatible (version: %d)", e.Version)
}

// InvalidLicenseKindError is returned when a ticket's license byte does not
// match any known PreTicketLicense kind.
type InvalidLicenseKindError struct {
	Value uint8
}

func (e *InvalidLicenseKindError) Error() string {
	return fmt.Sprintf("invalid license kind identifier value: %d", e.Value)
}

// UnknownLimitEntryKindError is returned when a ticket limit entry's kind
// tag does not match any known PreSwitchTicketLimitEntry kind.
type UnknownLimitEntryKindError struct {
	Kind uint32
}

func (e *UnknownLimitEntryKindError) Error() string {
	return fmt.Sprintf("unknown limit entry type: %#X", e.Kind)
}

// PreSwitchTicketSystemAppContentAccessFlags are bitflags indicating
// whether a content (given its content index) can be accessed by the
// "System App". The exact meaning and consequences of this "System App"
// concept are not known.
type PreSwitchTicketSystemAppContentAccessFlags uint16

// PreTicketLicense is the kind of license used in a ticket.
type PreTicketLicense uint8

const (
	// PreTicketLicenseNormal is the normal license of a ticket.
	PreTicketLicenseNormal PreTicketLicense = iota
	// PreTicketLicenseCanBeExported marks the ticket as exportable,
	// possibly to an external device.
	PreTicketLicenseCanBeExported
)

func parsePreTicketLicense(identifier uint8) (PreTicketLicense, error) {
	switch identifier {
	case 0:
		return PreTicketLicenseNormal, nil
	case 1:
		return PreTicketLicenseCanBeExported, nil
	default:
		return 0, &InvalidLicenseKindError{Value: identifier}
	}
}

func (l PreTicketLicense) serialize(w io.Writer) error {
	return stream.WriteU8(w, uint8(l))
}

// PreSwitchTicketLimitEntry is a limit over the use of a ticket.
type PreSwitchTicketLimitEntry struct {
	Kind PreSwitchTicketLimitKind

	// Minutes is populated when Kind is PreSwitchTicketLimitKindTime.
	Minutes uint32

	// NumberOfLaunches is populated when Kind is
	// PreSwitchTicketLimitKindLaunch.
	NumberOfLaunches uint32

	// NoLimitKind preserves the raw kind tag seen for a "no limit" entry
	// (observed as both 0 and 3 in the wild); round-tripping it
	// unmodified keeps serialization reproducible.
	NoLimitKind uint32
}

// PreSwitchTicketLimitKind is the behavior kind of a PreSwitchTicketLimitEntry.
type PreSwitchTicketLimitKind int

const (
	// PreSwitchTicketLimitKindNoLimit means the title has no limits.
	PreSwitchTicketLimitKindNoLimit PreSwitchTicketLimitKind = iota
	// PreSwitchTicketLimitKindTime means the title can only be executed
	// for a given number of minutes.
	PreSwitchTicketLimitKindTime
	// PreSwitchTicketLimitKindLaunch means the title can only be
	// launched a given number of times.
	PreSwitchTicketLimitKindLaunch
)

func parsePreSwitchTicketLimitEntry(kind, value uint32) (PreSwitchTicketLimitEntry, error) {
	switch kind {
	case 0, 3:
		return PreSwitchTicketLimitEntry{Kind: PreSwitchTicketLimitKindNoLimit, NoLimitKind: kind}, nil
	case 1:
		return PreSwitchTicketLimitEntry{Kind: PreSwitchTicketLimitKindTime, Minutes: value}, nil
	case 2:
		return PreSwitchTicketLimitEntry{Kind: PreSwitchTicketLimitKindLaunch, NumberOfLaunches: value}, nil
	default:
		return PreSwitchTicketLimitEntry{}, &UnknownLimitEntryKindError{Kind: kind}
	}
}

func (e PreSwitchTicketLimitEntry) serialize(w io.Writer) error {
	switch e.Kind {
	case PreSwitchTicketLimitKindNoLimit:
		if err := stream.WriteU32(w, e.NoLimitKind); err != nil {
			return err
		}
		return stream.WriteZeroed(w, 4)

	case PreSwitchTicketLimitKindTime:
		if err := stream.WriteU32(w, 1); err != nil {
			return err
		}
		return stream.WriteU32(w, e.Minutes)

	case PreSwitchTicketLimitKindLaunch:
		if err := stream.WriteU32(w, 2); err != nil {
			return err
		}
		return stream.WriteU32(w, e.NumberOfLaunches)

	default:
		return fmt.Errorf("unknown limit entry kind %v", e.Kind)
	}
}
